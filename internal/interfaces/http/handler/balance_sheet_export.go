package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/mfgerp/backend/internal/application/report"
)

// BalanceSheetRenderer is the slice of the exporter the handler serves
type BalanceSheetRenderer interface {
	ExportHTML(ctx context.Context, tenantID uuid.UUID) (string, error)
	ExportPDF(ctx context.Context, tenantID uuid.UUID) (*reportapp.ExportedDocument, error)
}

// BalanceSheetExportHandler serves the printable and downloadable balance sheet
type BalanceSheetExportHandler struct {
	BaseHandler
	exporter BalanceSheetRenderer
}

// NewBalanceSheetExportHandler creates a new BalanceSheetExportHandler
func NewBalanceSheetExportHandler(exporter BalanceSheetRenderer) *BalanceSheetExportHandler {
	return &BalanceSheetExportHandler{exporter: exporter}
}

// Print returns the balance sheet as a printable HTML page
// GET /api/v1/reports/balance-sheet/print
func (h *BalanceSheetExportHandler) Print(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	html, err := h.exporter.ExportHTML(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// DownloadPDF returns the balance sheet as an A4 PDF attachment
// GET /api/v1/reports/balance-sheet/pdf
func (h *BalanceSheetExportHandler) DownloadPDF(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	doc, err := h.exporter.ExportPDF(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+doc.Filename+"\"")
	c.Header("X-Page-Count", strconv.Itoa(doc.PageCount))
	if doc.ArchiveURL != "" {
		c.Header("X-Archive-URL", doc.ArchiveURL)
	}
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
