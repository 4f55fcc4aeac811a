// Package authcache implements a bounded, time-expiring authorization
// cache: per-(token, namespace, verb) allow/deny decisions backed by
// control-plane subject-access-review calls.
package authcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	authorizationv1 "k8s.io/api/authorization/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/kubetail-org/kubetail/internal/clusteragent/streamutil"
)

// DefaultTTL is used when the caller does not configure one.
const DefaultTTL = 5 * time.Minute

// DefaultCapacity is the maximum number of entries retained before
// LRU-style eviction kicks in.
const DefaultCapacity = 10_000

func log() *logrus.Entry {
	return logrus.WithField("component", "authcache")
}

// Authorizer is the interface internal/service depends on, satisfied by
// *Cache. It exists so callers can substitute a fake in tests without a
// real cluster.
type Authorizer interface {
	IsAuthorized(ctx context.Context, token string, namespaces []string, verb string) error
}

// Cache resolves and caches per-(token, namespace, verb) authorization
// decisions. It is safe for concurrent use.
type Cache struct {
	cache        *ttlcache.Cache
	newClientset func(token string) (kubernetes.Interface, error)
	newBackOff   func() backoff.BackOff
}

// NewCache builds a Cache that authorizes against the cluster addressed by
// baseConfig, overriding its bearer token with each caller's own token per
// request (so the subject-access-review runs as the caller, not as the
// agent's own service account).
func NewCache(baseConfig *rest.Config, ttl time.Duration, capacity int) *Cache {
	return newCache(ttl, capacity, func(token string) (kubernetes.Interface, error) {
		cfg := *baseConfig
		cfg.BearerToken = token
		cfg.BearerTokenFile = ""
		return kubernetes.NewForConfig(&cfg)
	})
}

func newCache(ttl time.Duration, capacity int, newClientset func(token string) (kubernetes.Interface, error)) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := ttlcache.NewCache()
	c.SetTTL(ttl)
	c.SetCacheSizeLimit(capacity)
	c.SkipTTLExtensionOnHit(true)

	return &Cache{
		cache:        c,
		newClientset: newClientset,
		newBackOff:   defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2.0
	b.MaxInterval = 1 * time.Second
	b.MaxElapsedTime = 3 * time.Second
	return b
}

// Close releases the cache's internal eviction goroutine.
func (c *Cache) Close() {
	c.cache.Close()
}

// IsAuthorized resolves whether token may perform verb against "pods/log"
// in each of namespaces (or cluster-wide, when namespaces is empty). An
// empty token yields UNAUTHENTICATED. The first denied namespace yields
// PERMISSION_DENIED naming the verb and namespace. Transport/API errors
// surface as UNKNOWN and are never cached.
func (c *Cache) IsAuthorized(ctx context.Context, token string, namespaces []string, verb string) error {
	if token == "" {
		return streamutil.NewStatusError(codes.Unauthenticated, "authentication token not found")
	}

	nsList := namespaces
	if len(nsList) == 0 {
		nsList = []string{""}
	}

	tokenHash := sha256.Sum256([]byte(token))

	for _, ns := range nsList {
		key := cacheKey(tokenHash, ns, verb)

		if cached, err := c.cache.Get(key); err == nil {
			if !cached.(bool) {
				return deniedError(ns, verb)
			}
			continue
		}

		allowed, err := c.checkSAR(ctx, token, ns, verb)
		if err != nil {
			log().WithError(err).WithFields(logrus.Fields{"namespace": ns, "verb": verb}).
				Warn("subject access review failed")
			return streamutil.NewStatusError(codes.Unknown, "authorization check failed: %v", err)
		}

		if err := c.cache.Set(key, allowed); err != nil {
			log().WithError(err).Debug("failed to cache authorization decision")
		}

		if !allowed {
			return deniedError(ns, verb)
		}
	}

	return nil
}

func deniedError(namespace, verb string) error {
	ns := namespace
	if ns == "" {
		ns = "all"
	}
	return streamutil.NewStatusError(codes.PermissionDenied, "permission denied: %q in namespace %q", verb, ns)
}

// cacheKey derives the cache key for a (tokenHash, namespace, verb) triple.
func cacheKey(tokenHash [32]byte, namespace, verb string) string {
	return hex.EncodeToString(tokenHash[:]) + "|" + namespace + "|" + verb
}

// checkSAR performs a single SelfSubjectAccessReview against the resource
// "pods/log" as the caller identified by token, retrying transient
// transport errors with a short exponential backoff.
func (c *Cache) checkSAR(ctx context.Context, token, namespace, verb string) (bool, error) {
	clientset, err := c.newClientset(token)
	if err != nil {
		return false, fmt.Errorf("building authorization client: %w", err)
	}

	review := &authorizationv1.SelfSubjectAccessReview{
		Spec: authorizationv1.SelfSubjectAccessReviewSpec{
			ResourceAttributes: &authorizationv1.ResourceAttributes{
				Namespace:   namespace,
				Verb:        verb,
				Resource:    "pods",
				Subresource: "log",
			},
		},
	}

	var allowed bool
	operation := func() error {
		result, err := clientset.AuthorizationV1().SelfSubjectAccessReviews().Create(ctx, review, metav1.CreateOptions{})
		if err != nil {
			return err
		}
		allowed = result.Status.Allowed
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return false, err
	}
	return allowed, nil
}
