package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/mfgerp/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *report.BalanceSheetSnapshot {
	phone := "+1 555 0100"
	return &report.BalanceSheetSnapshot{
		Assets: report.AssetsSection{
			Inventory:   decimal.NewFromInt(2000),
			Cash:        decimal.NewFromInt(500),
			Receivables: decimal.NewFromInt(300),
			Total:       decimal.NewFromInt(2800),
		},
		Liabilities: report.LiabilitiesSection{
			Payables: decimal.NewFromInt(150),
			Total:    decimal.NewFromInt(150),
		},
		NetPosition:   decimal.NewFromInt(2650),
		CoverageRatio: 1867,
		InventoryBreakdown: []report.InventoryCategoryBreakdown{
			{Category: inventory.CategoryRawMaterial, Label: "Raw Materials", Count: 3, Value: decimal.RequireFromString("1000.25")},
		},
		TopReceivables: []report.CounterpartyBalance{
			{ID: uuid.New(), Name: "Retailer", Type: partner.PartyTypeCustomer, Balance: decimal.NewFromInt(300), Phone: &phone},
		},
		CustomersWithDebt: 1,
		InventoryWarnings: []inventory.Category{inventory.CategorySemiFinished},
		GeneratedAt:       time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
	}
}

func TestInMemorySnapshotCache(t *testing.T) {
	c := NewInMemorySnapshotCache()
	defer c.Close()
	ctx := context.Background()

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := c.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("stores per tenant", func(t *testing.T) {
		tenantA, tenantB := uuid.New(), uuid.New()
		snapshot := sampleSnapshot()

		require.NoError(t, c.Set(ctx, tenantA, snapshot, time.Hour))

		got, err := c.Get(ctx, tenantA)
		require.NoError(t, err)
		assert.Same(t, snapshot, got)

		other, err := c.Get(ctx, tenantB)
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		tenantID := uuid.New()
		require.NoError(t, c.Set(ctx, tenantID, sampleSnapshot(), 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		got, err := c.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Nil(t, got)

		c.cleanup()
		_, present := c.entries[tenantID]
		assert.False(t, present)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		tenantID := uuid.New()
		require.NoError(t, c.Set(ctx, tenantID, sampleSnapshot(), 0))

		c.cleanup()

		got, err := c.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		tenantID := uuid.New()
		require.NoError(t, c.Set(ctx, tenantID, sampleSnapshot(), time.Hour))

		require.NoError(t, c.Invalidate(ctx, tenantID))

		got, err := c.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestInMemorySnapshotCache_CloseIsIdempotent(t *testing.T) {
	c := NewInMemorySnapshotCache()

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestSnapshotEncoding(t *testing.T) {
	original := sampleSnapshot()

	data, err := encodeSnapshot(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"coverage_ratio":1867`)

	decoded, err := decodeSnapshot(data)
	require.NoError(t, err)

	assert.True(t, original.Assets.Total.Equal(decoded.Assets.Total))
	assert.True(t, original.NetPosition.Equal(decoded.NetPosition))
	assert.Equal(t, original.CoverageRatio, decoded.CoverageRatio)
	require.Len(t, decoded.InventoryBreakdown, 1)
	assert.True(t, decimal.RequireFromString("1000.25").Equal(decoded.InventoryBreakdown[0].Value))
	require.Len(t, decoded.TopReceivables, 1)
	assert.Equal(t, original.TopReceivables[0].ID, decoded.TopReceivables[0].ID)
	assert.Equal(t, *original.TopReceivables[0].Phone, *decoded.TopReceivables[0].Phone)
	assert.Equal(t, original.InventoryWarnings, decoded.InventoryWarnings)
	assert.True(t, original.GeneratedAt.Equal(decoded.GeneratedAt))

	_, err = decodeSnapshot([]byte("not json"))
	assert.Error(t, err)
}

func TestRedisSnapshotCache_Key(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	c := NewRedisSnapshotCacheWithClient(nil, "")
	assert.Equal(t, "report:balance_sheet:00000000-0000-0000-0000-000000000001", c.key(tenantID))

	custom := NewRedisSnapshotCacheWithClient(nil, "test:")
	assert.Equal(t, "test:00000000-0000-0000-0000-000000000001", custom.key(tenantID))
}

func TestSnapshotCacheFactory(t *testing.T) {
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("memory backend", func(t *testing.T) {
		c, err := NewSnapshotCacheFactory(unreachable).CreateCache("memory")
		require.NoError(t, err)
		defer c.Close()

		assert.IsType(t, &InMemorySnapshotCache{}, c)
	})

	t.Run("redis backend falls back to memory", func(t *testing.T) {
		c, err := NewSnapshotCacheFactory(unreachable).CreateCache("redis")
		require.NoError(t, err)
		defer c.Close()

		assert.IsType(t, &InMemorySnapshotCache{}, c)
	})

	t.Run("redis backend without fallback fails", func(t *testing.T) {
		c, err := NewSnapshotCacheFactory(unreachable, WithInMemoryFallback(false)).CreateCache("redis")

		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Redis required")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewSnapshotCacheFactory(unreachable).CreateCache("memcached")
		assert.Error(t, err)
	})
}
