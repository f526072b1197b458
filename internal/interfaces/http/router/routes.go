package router

import "github.com/mfgerp/backend/internal/interfaces/http/handler"

// NewReportRoutes builds the /reports domain group.
// The print and PDF routes are only mounted when export is non-nil.
func NewReportRoutes(h *handler.BalanceSheetHandler, export *handler.BalanceSheetExportHandler) *DomainGroup {
	reports := NewDomainGroup("report", "/reports")
	sheet := reports.Group("balance-sheet", "/balance-sheet").
		GET("", h.GetBalanceSheet).
		GET("/summary", h.GetQuickSummary).
		GET("/inventory", h.GetInventoryValuation).
		GET("/treasury", h.GetTreasuryBalances).
		GET("/parties", h.GetPartiesBalances).
		POST("/refresh", h.Refresh)
	if export != nil {
		sheet.GET("/print", export.Print).
			GET("/pdf", export.DownloadPDF)
	}
	return reports
}
