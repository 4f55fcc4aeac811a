package logrecords

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamForwardScenario2(t *testing.T) {
	path := writeLogFile(t, threeLineLog)
	stopTime := mustParse(t, "2024-10-01T05:40:50.075182094Z")

	ch, err := StreamForward(context.Background(), path, ForwardOptions{
		StopTime:   &stopTime,
		FollowFrom: FollowNoop,
	})
	require.NoError(t, err)

	records, err := collectRecords(t, ch)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "linenum 1", records[0].Message)
	assert.Equal(t, "linenum 2", records[1].Message)
}

func TestStreamForwardNoopDoesNotTail(t *testing.T) {
	path := writeLogFile(t, threeLineLog)

	ch, err := StreamForward(context.Background(), path, ForwardOptions{FollowFrom: FollowNoop})
	require.NoError(t, err)

	records, err := collectRecords(t, ch)
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestStreamForwardScenario5ShutdownDuringTail(t *testing.T) {
	path := writeLogFile(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := StreamForward(ctx, path, ForwardOptions{FollowFrom: FollowEnd})
	require.NoError(t, err)

	cancel()

	select {
	case item, ok := <-ch:
		require.True(t, ok)
		require.Error(t, item.Err)
		assert.Contains(t, item.Err.Error(), "shutting down")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for shutdown error")
	}

	_, ok := <-ch
	assert.False(t, ok)
}

func TestStreamForwardTailsNewLines(t *testing.T) {
	path := writeLogFile(t, []string{"2024-10-01T05:40:46.960135302Z stdout F linenum 1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := StreamForward(ctx, path, ForwardOptions{FollowFrom: FollowDefault})
	require.NoError(t, err)

	first := <-ch
	require.NoError(t, first.Err)
	assert.Equal(t, "linenum 1", first.Value.Message)

	// Give the tail loop time to register its filesystem watch before the
	// next write.
	time.Sleep(200 * time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("2024-10-01T05:40:48.840712595Z stdout F linenum 2\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case item := <-ch:
		require.NoError(t, item.Err)
		assert.Equal(t, "linenum 2", item.Value.Message)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for tailed record")
	}
}

func TestStreamForwardTruncation(t *testing.T) {
	path := writeLogFile(t, []string{"2024-11-20T10:00:00Z stdout F 1234567890"})

	ch, err := StreamForward(context.Background(), path, ForwardOptions{
		FollowFrom:      FollowNoop,
		TruncateAtBytes: 5,
	})
	require.NoError(t, err)

	records, err := collectRecords(t, ch)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12345", records[0].Message)
	assert.Equal(t, uint64(10), records[0].OriginalSizeBytes)
	assert.True(t, records[0].IsTruncated)
}

func TestStreamForwardMissingStartTimeReturnsNoRecords(t *testing.T) {
	path := writeLogFile(t, threeLineLog)
	farFuture := mustParse(t, "2030-01-01T00:00:00Z")

	ch, err := StreamForward(context.Background(), path, ForwardOptions{
		StartTime:  &farFuture,
		FollowFrom: FollowNoop,
	})
	require.NoError(t, err)

	records, err := collectRecords(t, ch)
	require.NoError(t, err)
	assert.Empty(t, records)
}
