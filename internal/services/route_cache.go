package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fleet-routing-service/internal/domain"
	"fleet-routing-service/internal/ports"
)

// DefaultCacheTTL bounds how long an optimized plan stays reusable.
const DefaultCacheTTL = 300 * time.Second

const cacheKeyPrefix = "routeplan:"

// RouteCache stores optimized plans keyed by request fingerprint.
//
// Backend failures degrade to cache-miss behavior: optimization proceeds
// uncached rather than failing the request. There is no single-flight
// de-duplication; two concurrent identical requests may both miss and both
// optimize, racing last-write-wins into the store.
type RouteCache struct {
	store ports.KVStore
	ttl   time.Duration
}

func NewRouteCache(store ports.KVStore, ttl time.Duration) *RouteCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RouteCache{store: store, ttl: ttl}
}

// Get returns the cached plan for a fingerprint, or a miss. A hit returns a
// snapshot decoded from the store, never a shared pointer.
func (c *RouteCache) Get(ctx context.Context, fingerprint string) (*domain.Plan, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}

	raw, ok, err := c.store.Get(ctx, cacheKeyPrefix+fingerprint)
	if err != nil {
		log.Printf("route cache read failed, treating as miss: fp=%s err=%v", short(fingerprint), err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var plan domain.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		log.Printf("route cache entry corrupt, treating as miss: fp=%s err=%v", short(fingerprint), err)
		return nil, false
	}
	return &plan, true
}

// Put stores a plan under its fingerprint with the cache TTL. Write failures
// are logged and swallowed.
func (c *RouteCache) Put(ctx context.Context, fingerprint string, plan *domain.Plan) {
	if c == nil || c.store == nil || plan == nil {
		return
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		log.Printf("route cache encode failed: fp=%s err=%v", short(fingerprint), err)
		return
	}

	if err := c.store.Set(ctx, cacheKeyPrefix+fingerprint, raw, c.ttl); err != nil {
		log.Printf("route cache write failed: fp=%s err=%v", short(fingerprint), err)
	}
}

func short(fingerprint string) string {
	if len(fingerprint) <= 12 {
		return fingerprint
	}
	return fmt.Sprintf("%s...", fingerprint[:12])
}
