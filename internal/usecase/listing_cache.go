package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strconv"
	"strings"
	"time"
)

// ListingCache stores job search results by keyword. When Available reports
// false callers skip the cache entirely, locks included.
type ListingCache interface {
	Available() bool
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	// SetJSON with ttl <= 0 uses the backend's default TTL.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	// SetIfNotExists reports whether the key was set.
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	// GetInt returns 0 for a missing key.
	GetInt(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

const (
	jobsSearchPrefix  = "jobs:search:"
	jobsSearchPattern = jobsSearchPrefix + "*"
	jobsLockPrefix    = "jobs:lock:"
	// jobsGenerationKey is part of every listing key. Bumping it orphans
	// listings that were read before a write but stored after it.
	jobsGenerationKey = "jobs:generation"
)

// JobsSearchCacheKey maps keywords that only differ in case or spacing to the
// same key within a generation. The keyword is hashed so arbitrary user input
// never ends up in a Redis key.
func JobsSearchCacheKey(generation int64, keyword string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return jobsSearchPrefix + strconv.FormatInt(generation, 10) + ":" + hex.EncodeToString(sum[:])
}

// JobsSearchLockKey guards the rebuild of searchKey.
func JobsSearchLockKey(searchKey string) string {
	return jobsLockPrefix + strings.TrimPrefix(strings.TrimSpace(searchKey), jobsSearchPrefix)
}

func cacheAvailable(c ListingCache) bool {
	return c != nil && c.Available()
}

// invalidateJobListings runs after any write that changes what a listing
// shows: a new job, or a company rename or logo change.
func invalidateJobListings(ctx context.Context, c ListingCache, logger *log.Logger) {
	if !cacheAvailable(c) {
		return
	}
	if _, err := c.Incr(ctx, jobsGenerationKey); err != nil && logger != nil {
		logger.Printf("[Jobs] cache generation bump failed: %v", err)
	}
	if err := c.DeleteByPattern(ctx, jobsSearchPattern); err != nil && logger != nil {
		logger.Printf("[Jobs] cache invalidation failed: %v", err)
	}
}
