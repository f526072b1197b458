package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/inventory"
	"github.com/mfgerp/backend/internal/domain/partner"
	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/mfgerp/backend/internal/domain/shared"
	"github.com/mfgerp/backend/internal/domain/treasury"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InventoryFailurePolicy decides what a failed inventory category read does to the report
type InventoryFailurePolicy string

const (
	// InventoryFailureLenient degrades the failed category to zero and keeps going
	InventoryFailureLenient InventoryFailurePolicy = "lenient"
	// InventoryFailureStrict fails the whole report like treasury and party reads do
	InventoryFailureStrict InventoryFailurePolicy = "strict"
)

// IsValid returns true if the policy is recognized
func (p InventoryFailurePolicy) IsValid() bool {
	return p == InventoryFailureLenient || p == InventoryFailureStrict
}

// MetricsRecorder receives balance sheet computation outcomes
type MetricsRecorder interface {
	RecordComputation(ctx context.Context, duration time.Duration, err error)
	RecordDegradedCategory(ctx context.Context, category string)
	RecordCacheLookup(ctx context.Context, hit bool)
}

type nopMetrics struct{}

func (nopMetrics) RecordComputation(context.Context, time.Duration, error) {}
func (nopMetrics) RecordDegradedCategory(context.Context, string)          {}
func (nopMetrics) RecordCacheLookup(context.Context, bool)                 {}

// BalanceSheetService composes the balance sheet from the inventory,
// treasury and counterparty ledgers
type BalanceSheetService struct {
	stockRepo   inventory.StockRecordRepository
	accountRepo treasury.AccountRepository
	partyRepo   partner.PartyRepository
	logger      *zap.Logger
	tracer      trace.Tracer

	failurePolicy InventoryFailurePolicy
	sourceTimeout time.Duration
	cache         report.SnapshotCache
	cacheTTL      time.Duration
	now           func() time.Time
	metrics       MetricsRecorder
}

// BalanceSheetOption is a functional option for BalanceSheetService
type BalanceSheetOption func(*BalanceSheetService)

// WithInventoryFailurePolicy sets how inventory read failures are handled
func WithInventoryFailurePolicy(policy InventoryFailurePolicy) BalanceSheetOption {
	return func(s *BalanceSheetService) {
		if policy.IsValid() {
			s.failurePolicy = policy
		}
	}
}

// WithSourceTimeout bounds the time spent reading the source ledgers
func WithSourceTimeout(timeout time.Duration) BalanceSheetOption {
	return func(s *BalanceSheetService) {
		s.sourceTimeout = timeout
	}
}

// WithSnapshotCache enables read-through caching of composed snapshots
func WithSnapshotCache(cache report.SnapshotCache, ttl time.Duration) BalanceSheetOption {
	return func(s *BalanceSheetService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithMetricsRecorder reports computations, degraded categories and cache lookups to recorder
func WithMetricsRecorder(recorder MetricsRecorder) BalanceSheetOption {
	return func(s *BalanceSheetService) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithClock overrides the clock used for GeneratedAt
func WithClock(now func() time.Time) BalanceSheetOption {
	return func(s *BalanceSheetService) {
		s.now = now
	}
}

// NewBalanceSheetService creates a new BalanceSheetService
func NewBalanceSheetService(
	stockRepo inventory.StockRecordRepository,
	accountRepo treasury.AccountRepository,
	partyRepo partner.PartyRepository,
	logger *zap.Logger,
	opts ...BalanceSheetOption,
) *BalanceSheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BalanceSheetService{
		stockRepo:     stockRepo,
		accountRepo:   accountRepo,
		partyRepo:     partyRepo,
		logger:        logger.Named("balance_sheet"),
		tracer:        otel.Tracer("github.com/mfgerp/backend/internal/application/report"),
		failurePolicy: InventoryFailureLenient,
		now:           time.Now,
		metrics:       nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailurePolicy returns the inventory failure policy in effect
func (s *BalanceSheetService) FailurePolicy() InventoryFailurePolicy {
	return s.failurePolicy
}

// BuildBalanceSheet returns the domain snapshot for the tenant, from cache when enabled
func (s *BalanceSheetService) BuildBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheetSnapshot, error) {
	if cached := s.cachedSnapshot(ctx, tenantID); cached != nil {
		return cached, nil
	}

	snapshot, err := s.compose(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// a snapshot composed for a caller that went away is not trusted
	if s.cache != nil && ctx.Err() == nil {
		if err := s.cache.Set(ctx, tenantID, snapshot, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache balance sheet",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}
	return snapshot, nil
}

// GetBalanceSheet returns the full balance sheet
func (s *BalanceSheetService) GetBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*BalanceSheetResponse, error) {
	snapshot, err := s.BuildBalanceSheet(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToBalanceSheetResponse(snapshot), nil
}

// GetQuickSummary returns the headline figures. It always derives from a full snapshot.
func (s *BalanceSheetService) GetQuickSummary(ctx context.Context, tenantID uuid.UUID) (*QuickSummaryResponse, error) {
	snapshot, err := s.BuildBalanceSheet(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToQuickSummaryResponse(report.Summarize(snapshot)), nil
}

// GetInventoryValuation returns the four inventory category lines in reporting
// order. Lines valued at zero because their read failed are flagged degraded.
func (s *BalanceSheetService) GetInventoryValuation(ctx context.Context, tenantID uuid.UUID) ([]InventoryCategoryResponse, error) {
	ctx, cancel := s.withSourceTimeout(ctx)
	defer cancel()

	lines, warnings, err := s.valueInventory(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toInventoryResponses(lines, warnings), nil
}

// GetTreasuryBalances returns all treasury accounts, highest balance first
func (s *BalanceSheetService) GetTreasuryBalances(ctx context.Context, tenantID uuid.UUID) ([]TreasuryAccountResponse, error) {
	ctx, cancel := s.withSourceTimeout(ctx)
	defer cancel()

	lines, err := s.loadTreasury(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toTreasuryResponses(lines), nil
}

// GetPartiesBalances returns customers and suppliers with a non-zero balance, highest first
func (s *BalanceSheetService) GetPartiesBalances(ctx context.Context, tenantID uuid.UUID) ([]CounterpartyResponse, error) {
	ctx, cancel := s.withSourceTimeout(ctx)
	defer cancel()

	lines, err := s.loadParties(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toCounterpartyResponses(lines), nil
}

// Refresh drops the cached snapshot so the next request recomputes it
func (s *BalanceSheetService) Refresh(ctx context.Context, tenantID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		return fmt.Errorf("invalidate balance sheet cache: %w", err)
	}
	s.logger.Info("Balance sheet cache invalidated", zap.String("tenant_id", tenantID.String()))
	return nil
}

// withSourceTimeout bounds ledger reads by the configured source timeout
func (s *BalanceSheetService) withSourceTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.sourceTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.sourceTimeout)
}

func (s *BalanceSheetService) cachedSnapshot(ctx context.Context, tenantID uuid.UUID) *report.BalanceSheetSnapshot {
	if s.cache == nil {
		return nil
	}
	snapshot, err := s.cache.Get(ctx, tenantID)
	s.metrics.RecordCacheLookup(ctx, err == nil && snapshot != nil)
	if err != nil {
		s.logger.Warn("Balance sheet cache read failed, recomputing",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return nil
	}
	return snapshot
}

// compose fans out the three ledger reads, waits for all of them and runs
// the pure composition. A fatal read failure cancels the others.
func (s *BalanceSheetService) compose(ctx context.Context, tenantID uuid.UUID) (snapshot *report.BalanceSheetSnapshot, err error) {
	defer func(parent context.Context, start time.Time) {
		s.metrics.RecordComputation(parent, time.Since(start), err)
	}(ctx, time.Now())

	ctx, span := s.tracer.Start(ctx, "BalanceSheetService.compose",
		trace.WithAttributes(attribute.String("tenant_id", tenantID.String())),
	)
	defer span.End()

	ctx, cancel := s.withSourceTimeout(ctx)
	defer cancel()

	var in report.BalanceSheetInputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lines, warnings, err := s.valueInventory(gctx, tenantID)
		in.Inventory, in.InventoryWarnings = lines, warnings
		return err
	})
	g.Go(func() error {
		lines, err := s.loadTreasury(gctx, tenantID)
		in.Treasury = lines
		return err
	})
	g.Go(func() error {
		lines, err := s.loadParties(gctx, tenantID)
		in.Counterparties = lines
		return err
	})
	err = g.Wait()
	if err == nil && ctx.Err() != nil {
		err = shared.WrapDomainError(shared.ErrSourceUnavailable.Code, "balance sheet sources abandoned", ctx.Err())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "balance sheet sources failed")
		s.logger.Error("Balance sheet could not be computed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	snapshot = report.ComposeBalanceSheet(in, s.now())

	s.logger.Debug("Balance sheet composed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("net_position", snapshot.NetPosition.String()),
		zap.Int64("coverage_ratio", snapshot.CoverageRatio),
		zap.Int("degraded_categories", len(snapshot.InventoryWarnings)),
	)
	return snapshot, nil
}

// valueInventory reads the four categories concurrently. Under the lenient
// policy a failed category becomes a zero line and is reported as a warning.
// Reads that fail because ctx is done fail the valuation under either policy.
func (s *BalanceSheetService) valueInventory(ctx context.Context, tenantID uuid.UUID) ([]report.InventoryCategoryBreakdown, []inventory.Category, error) {
	categories := inventory.Categories()
	lines := make([]report.InventoryCategoryBreakdown, len(categories))
	failed := make([]bool, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		g.Go(func() error {
			records, err := s.stockRepo.FindByCategory(gctx, tenantID, category)
			if err == nil {
				lines[i] = report.ValueCategory(category, records)
				return nil
			}
			if ctx.Err() != nil {
				return shared.WrapDomainError(shared.ErrSourceUnavailable.Code,
					fmt.Sprintf("inventory category %s abandoned", category), err)
			}
			if s.failurePolicy == InventoryFailureStrict {
				return shared.WrapDomainError(shared.ErrPartialInventoryFailure.Code,
					fmt.Sprintf("inventory category %s unavailable", category), err)
			}
			s.logger.Warn("Inventory category unavailable, valued at zero",
				zap.String("tenant_id", tenantID.String()),
				zap.String("category", category.String()),
				zap.Error(err),
			)
			s.metrics.RecordDegradedCategory(ctx, category.String())
			lines[i] = report.EmptyCategory(category)
			failed[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []inventory.Category
	for i, category := range categories {
		if failed[i] {
			warnings = append(warnings, category)
		}
	}
	return lines, warnings, nil
}

func (s *BalanceSheetService) loadTreasury(ctx context.Context, tenantID uuid.UUID) ([]report.TreasuryAccountBreakdown, error) {
	accounts, err := s.accountRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, shared.WrapDomainError(shared.ErrSourceUnavailable.Code, "treasury accounts unavailable", err)
	}
	return report.TreasuryBreakdown(accounts), nil
}

func (s *BalanceSheetService) loadParties(ctx context.Context, tenantID uuid.UUID) ([]report.CounterpartyBalance, error) {
	parties, err := s.partyRepo.FindWithNonZeroBalance(ctx, tenantID)
	if err != nil {
		return nil, shared.WrapDomainError(shared.ErrSourceUnavailable.Code, "counterparty balances unavailable", err)
	}
	return report.CounterpartyBalances(parties), nil
}
