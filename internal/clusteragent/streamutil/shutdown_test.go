package streamutil

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWithShutdownForwardsUntilClose(t *testing.T) {
	inner := make(chan Item[int], 2)
	inner <- Item[int]{Value: 1}
	inner <- Item[int]{Value: 2}
	close(inner)

	out := WrapWithShutdown(context.Background(), inner)

	var got []int
	for item := range out {
		require.NoError(t, item.Err)
		got = append(got, item.Value)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestWrapWithShutdownForwardsInnerErrorAndStops(t *testing.T) {
	inner := make(chan Item[int], 1)
	boom := errors.New("boom")
	inner <- Item[int]{Err: boom}
	close(inner)

	out := WrapWithShutdown(context.Background(), inner)

	item, ok := <-out
	require.True(t, ok)
	assert.Equal(t, boom, item.Err)

	_, ok = <-out
	assert.False(t, ok, "channel should close after a terminal error")
}

func TestWrapWithShutdownEmitsShuttingDownOnCancel(t *testing.T) {
	inner := make(chan Item[int])
	ctx, cancel := context.WithCancel(context.Background())

	out := WrapWithShutdown(ctx, inner)
	cancel()

	select {
	case item, ok := <-out:
		require.True(t, ok)
		var statusErr *StatusError
		require.ErrorAs(t, item.Err, &statusErr)
		assert.Equal(t, ShuttingDown().Code, statusErr.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for shutdown item")
	}

	_, ok := <-out
	assert.False(t, ok, "channel should close after shutdown")
}

func TestCancelAwareReaderReturnsZeroAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewCancelAwareReader(ctx, strings.NewReader("hello"))
	n, err := r.Read(make([]byte, 5))
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestCancelAwareReaderPassesThroughBeforeCancel(t *testing.T) {
	r := NewCancelAwareReader(context.Background(), strings.NewReader("hello"))
	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestNewStatusErrorFormatsMessage(t *testing.T) {
	err := NewStatusError(0, "denied: %s in %q", "get", "ns")
	assert.Equal(t, "denied: get in \"ns\"", err.Message)
}

func TestShuttingDownIsUnavailable(t *testing.T) {
	err := ShuttingDown()
	assert.Equal(t, "Server is shutting down", err.Message)
}
