package authcache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authorizationv1 "k8s.io/api/authorization/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8stesting "k8s.io/client-go/testing"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

func newTestCache(t *testing.T, ttl time.Duration, allowed bool, sarErr error) (*Cache, *int32) {
	t.Helper()
	var calls int32

	c := newCache(ttl, 10, func(token string) (kubernetes.Interface, error) {
		clientset := fake.NewSimpleClientset()
		clientset.PrependReactor("create", "selfsubjectaccessreviews", func(action k8stesting.Action) (bool, runtime.Object, error) {
			atomic.AddInt32(&calls, 1)
			if sarErr != nil {
				return true, nil, sarErr
			}
			review := &authorizationv1.SelfSubjectAccessReview{
				Status: authorizationv1.SubjectAccessReviewStatus{Allowed: allowed},
			}
			return true, review, nil
		})
		return clientset, nil
	})
	c.newBackOff = func() backoff.BackOff { return &backoff.StopBackOff{} }
	t.Cleanup(c.Close)
	return c, &calls
}

func TestIsAuthorizedMissingTokenIsUnauthenticated(t *testing.T) {
	c, _ := newTestCache(t, time.Minute, true, nil)

	err := c.IsAuthorized(context.Background(), "", []string{"default"}, "get")
	require.Error(t, err)

	var statusErr *streamutil.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Unauthenticated", statusErr.Code.String())
}

func TestIsAuthorizedAllowedCachesDecision(t *testing.T) {
	c, calls := newTestCache(t, time.Minute, true, nil)

	require.NoError(t, c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get"))
	require.NoError(t, c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get"))

	assert.EqualValues(t, 1, atomic.LoadInt32(calls), "second call should be served from cache")
}

func TestIsAuthorizedDeniedReturnsPermissionDenied(t *testing.T) {
	c, calls := newTestCache(t, time.Minute, false, nil)

	err := c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get")
	require.Error(t, err)

	var statusErr *streamutil.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "PermissionDenied", statusErr.Code.String())

	// Deny decisions are cached too.
	err = c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestIsAuthorizedTransportErrorIsNotCached(t *testing.T) {
	c, calls := newTestCache(t, time.Minute, false, errors.New("connection refused"))

	err := c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get")
	require.Error(t, err)
	var statusErr *streamutil.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Unknown", statusErr.Code.String())

	err = c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get")
	require.Error(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(calls), "transport errors must not be cached")
}

func TestIsAuthorizedExpiresAfterTTL(t *testing.T) {
	c, calls := newTestCache(t, 50*time.Millisecond, true, nil)

	require.NoError(t, c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get"))
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, c.IsAuthorized(context.Background(), "tok", []string{"default"}, "get"))

	assert.EqualValues(t, 2, atomic.LoadInt32(calls), "decision should be re-checked after TTL expiry")
}

func TestIsAuthorizedChecksEveryNamespace(t *testing.T) {
	c, calls := newTestCache(t, time.Minute, true, nil)

	require.NoError(t, c.IsAuthorized(context.Background(), "tok", []string{"ns-a", "ns-b"}, "get"))
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}
