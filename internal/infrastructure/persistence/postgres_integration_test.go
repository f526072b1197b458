package persistence

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"github.com/mfgerp/backend/internal/infrastructure/migration"
	"github.com/mfgerp/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresTestDB starts a PostgreSQL container and applies the SQL migrations
func newPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("balance_sheet_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	m, err := migration.New(sqlDB, migrationsPath, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

// findMigrationsPath walks up from this file to the repository's migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "migrations")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

func TestReportingRepositories_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL container test in short mode")
	}

	db := newPostgresTestDB(t)
	ctx := context.Background()
	tenantID := uuid.New()

	seed := []any{
		models.NewStockRecordModel(tenantID, inventory.CategoryPackagingMaterial, "Cartons", dec("200"), dec("0.75")),
		models.NewStockRecordModel(tenantID, inventory.CategoryPackagingMaterial, "Labels", nil, dec("0.02")),
		models.NewTreasuryAccountModel(tenantID, "Petty cash", treasury.AccountTypeCash, dec("50")),
		models.NewTreasuryAccountModel(tenantID, "Operating account", treasury.AccountTypeBank, dec("12000.50")),
		models.NewPartyModel(tenantID, "Distributor", partner.PartyTypeCustomer, decimal.RequireFromString("3500"), nil),
		models.NewPartyModel(tenantID, "Resin supplier", partner.PartyTypeSupplier, decimal.RequireFromString("-1200.25"), nil),
		models.NewPartyModel(tenantID, "Closed account", partner.PartyTypeSupplier, decimal.Zero, nil),
	}
	for _, row := range seed {
		require.NoError(t, db.Create(row).Error)
	}

	t.Run("nullable stock columns survive the round trip", func(t *testing.T) {
		records, err := NewGormStockRecordRepository(db).FindByCategory(ctx, tenantID, inventory.CategoryPackagingMaterial)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Cartons", records[0].Name)
		assert.True(t, decimal.NewFromInt(150).Equal(records[0].Value()))
		assert.Nil(t, records[1].Quantity)
		assert.True(t, records[1].Value().IsZero())
	})

	t.Run("treasury accounts ordered by balance", func(t *testing.T) {
		accounts, err := NewGormTreasuryAccountRepository(db).FindAll(ctx, tenantID)

		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, "Operating account", accounts[0].Name)
		assert.True(t, decimal.RequireFromString("12000.5").Equal(accounts[0].BalanceOrZero()))
	})

	t.Run("zero balance parties are filtered in SQL", func(t *testing.T) {
		parties, err := NewGormPartyRepository(db).FindWithNonZeroBalance(ctx, tenantID)

		require.NoError(t, err)
		require.Len(t, parties, 2)
		assert.Equal(t, "Distributor", parties[0].Name)
		assert.True(t, parties[1].IsPayable())
	})

	t.Run("unknown category violates the check constraint", func(t *testing.T) {
		bad := models.NewStockRecordModel(tenantID, inventory.Category("scrap"), "Offcuts", dec("1"), dec("1"))

		assert.Error(t, db.Create(bad).Error)
	})
}
