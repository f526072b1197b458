package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/report"
)

type snapshotEntry struct {
	snapshot  *report.BalanceSheetSnapshot
	expiresAt time.Time
}

func (e snapshotEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// InMemorySnapshotCache implements report.SnapshotCache using an in-memory map.
// It is suitable for single-instance deployments and testing.
type InMemorySnapshotCache struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]snapshotEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache.
// It starts a background goroutine to drop expired entries.
func NewInMemorySnapshotCache() *InMemorySnapshotCache {
	c := &InMemorySnapshotCache{
		entries:  make(map[uuid.UUID]snapshotEntry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached snapshot for the tenant, or nil when absent or expired
func (c *InMemorySnapshotCache) Get(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheetSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[tenantID]
	if !ok || e.expired(time.Now()) {
		return nil, nil
	}
	return e.snapshot, nil
}

// Set stores the snapshot for the tenant. A zero TTL never expires.
func (c *InMemorySnapshotCache) Set(ctx context.Context, tenantID uuid.UUID, snapshot *report.BalanceSheetSnapshot, ttl time.Duration) error {
	e := snapshotEntry{snapshot: snapshot}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[tenantID] = e
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached snapshot for the tenant
func (c *InMemorySnapshotCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, tenantID)
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemorySnapshotCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of stored entries, expired ones included
func (c *InMemorySnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemorySnapshotCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemorySnapshotCache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for tenantID, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, tenantID)
		}
	}
}

// Ensure InMemorySnapshotCache implements SnapshotCache
var _ report.SnapshotCache = (*InMemorySnapshotCache)(nil)
