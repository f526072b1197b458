package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/mfgerp/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// Computation outcomes recorded on balance sheet metrics.
const (
	OutcomeOK                      = "ok"
	OutcomeSourceUnavailable       = "source_unavailable"
	OutcomePartialInventoryFailure = "partial_inventory_failure"
	OutcomeTimeout                 = "timeout"
	OutcomeCanceled                = "canceled"
	OutcomeError                   = "error"
)

// ReportMetrics records balance sheet computations.
type ReportMetrics struct {
	computations       *Counter
	computeDuration    *Histogram
	degradedCategories *Counter
	cacheLookups       *Counter
}

// NewReportMetrics registers the balance sheet instruments on meter.
func NewReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	computations, err := NewCounter(meter,
		"balance_sheet_computations_total",
		"Number of balance sheet computations by outcome",
		"{computation}",
	)
	if err != nil {
		return nil, err
	}

	computeDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "balance_sheet_compute_duration_seconds",
		Description: "Time to read the ledgers and compose a balance sheet",
		Unit:        "s",
		Boundaries:  ComputeDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	degraded, err := NewCounter(meter,
		"balance_sheet_degraded_categories_total",
		"Inventory categories valued at zero because their read failed",
		"{category}",
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := NewCounter(meter,
		"balance_sheet_cache_lookups_total",
		"Snapshot cache lookups by result",
		"{lookup}",
	)
	if err != nil {
		return nil, err
	}

	return &ReportMetrics{
		computations:       computations,
		computeDuration:    computeDuration,
		degradedCategories: degraded,
		cacheLookups:       cacheLookups,
	}, nil
}

// RecordComputation counts one computation and its duration under the outcome derived from err.
func (m *ReportMetrics) RecordComputation(ctx context.Context, duration time.Duration, err error) {
	outcome := AttrOutcome.String(Outcome(err))
	m.computations.Inc(ctx, outcome)
	m.computeDuration.RecordDuration(ctx, duration, outcome)
}

// RecordDegradedCategory counts an inventory category that was valued at zero.
func (m *ReportMetrics) RecordDegradedCategory(ctx context.Context, category string) {
	m.degradedCategories.Inc(ctx, AttrCategory.String(category))
}

// RecordCacheLookup counts a snapshot cache hit or miss.
func (m *ReportMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Inc(ctx, AttrCacheResult.String(result))
}

// Outcome classifies a computation error for metric labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, shared.ErrPartialInventoryFailure):
		return OutcomePartialInventoryFailure
	case errors.Is(err, shared.ErrSourceUnavailable):
		return OutcomeSourceUnavailable
	default:
		return OutcomeError
	}
}
