package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/mfgerp/backend/internal/application/report"
)

// BalanceSheetReader is the slice of the balance sheet service the handler serves
type BalanceSheetReader interface {
	GetBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*reportapp.BalanceSheetResponse, error)
	GetQuickSummary(ctx context.Context, tenantID uuid.UUID) (*reportapp.QuickSummaryResponse, error)
	GetInventoryValuation(ctx context.Context, tenantID uuid.UUID) ([]reportapp.InventoryCategoryResponse, error)
	GetTreasuryBalances(ctx context.Context, tenantID uuid.UUID) ([]reportapp.TreasuryAccountResponse, error)
	GetPartiesBalances(ctx context.Context, tenantID uuid.UUID) ([]reportapp.CounterpartyResponse, error)
	Refresh(ctx context.Context, tenantID uuid.UUID) error
}

// BalanceSheetHandler handles the balance sheet API endpoints
type BalanceSheetHandler struct {
	BaseHandler
	service BalanceSheetReader
}

// NewBalanceSheetHandler creates a new BalanceSheetHandler
func NewBalanceSheetHandler(service BalanceSheetReader) *BalanceSheetHandler {
	return &BalanceSheetHandler{service: service}
}

// RefreshResponse is returned by the refresh endpoint
type RefreshResponse struct {
	Refreshed bool `json:"refreshed"`
}

// GetBalanceSheet returns the full balance sheet
// GET /api/v1/reports/balance-sheet
func (h *BalanceSheetHandler) GetBalanceSheet(c *gin.Context) {
	serve(h, c, h.service.GetBalanceSheet)
}

// GetQuickSummary returns net position, totals and status
// GET /api/v1/reports/balance-sheet/summary
func (h *BalanceSheetHandler) GetQuickSummary(c *gin.Context) {
	serve(h, c, h.service.GetQuickSummary)
}

// GetInventoryValuation returns the four inventory category lines
// GET /api/v1/reports/balance-sheet/inventory
func (h *BalanceSheetHandler) GetInventoryValuation(c *gin.Context) {
	serve(h, c, h.service.GetInventoryValuation)
}

// GetTreasuryBalances returns treasury accounts, highest balance first
// GET /api/v1/reports/balance-sheet/treasury
func (h *BalanceSheetHandler) GetTreasuryBalances(c *gin.Context) {
	serve(h, c, h.service.GetTreasuryBalances)
}

// GetPartiesBalances returns customers and suppliers with open balances
// GET /api/v1/reports/balance-sheet/parties
func (h *BalanceSheetHandler) GetPartiesBalances(c *gin.Context) {
	serve(h, c, h.service.GetPartiesBalances)
}

// Refresh drops the cached balance sheet of the tenant
// POST /api/v1/reports/balance-sheet/refresh
func (h *BalanceSheetHandler) Refresh(c *gin.Context) {
	serve(h, c, func(ctx context.Context, tenantID uuid.UUID) (RefreshResponse, error) {
		if err := h.service.Refresh(ctx, tenantID); err != nil {
			return RefreshResponse{}, err
		}
		return RefreshResponse{Refreshed: true}, nil
	})
}

// serve resolves the tenant, runs fetch and writes the envelope
func serve[T any](h *BalanceSheetHandler, c *gin.Context, fetch func(context.Context, uuid.UUID) (T, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	result, err := fetch(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
