package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/mfgerp/backend/internal/domain/shared"
	infra "github.com/mfgerp/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

const pdfFooterTemplate = `<div style="font-size:8px;width:100%;text-align:center;color:#666;">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// SnapshotBuilder yields the balance sheet snapshot of a tenant
type SnapshotBuilder interface {
	BuildBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheetSnapshot, error)
}

// HTMLRenderer turns a snapshot into a printable HTML page
type HTMLRenderer interface {
	Render(snapshot *report.BalanceSheetSnapshot) (string, error)
}

// DocumentArchive keeps copies of exported documents
type DocumentArchive interface {
	Store(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// ExportedDocument is a rendered balance sheet file
type ExportedDocument struct {
	Filename  string
	Content   []byte
	PageCount int
	// ArchiveKey and ArchiveURL are set when the document was archived
	ArchiveKey string
	ArchiveURL string
}

// BalanceSheetExporter renders the balance sheet for printing and download
type BalanceSheetExporter struct {
	builder SnapshotBuilder
	html    HTMLRenderer
	pdf     infra.PDFRenderer
	archive  DocumentArchive
	location *time.Location
	logger   *zap.Logger
}

// ExporterOption configures a BalanceSheetExporter
type ExporterOption func(*BalanceSheetExporter)

// WithDocumentArchive archives every exported PDF
func WithDocumentArchive(archive DocumentArchive) ExporterOption {
	return func(e *BalanceSheetExporter) {
		e.archive = archive
	}
}

// WithDocumentLocation dates exported files in loc, the zone the printed page uses
func WithDocumentLocation(loc *time.Location) ExporterOption {
	return func(e *BalanceSheetExporter) {
		if loc != nil {
			e.location = loc
		}
	}
}

// NewBalanceSheetExporter creates an exporter. A nil pdf renderer disables PDF export.
func NewBalanceSheetExporter(builder SnapshotBuilder, html HTMLRenderer, pdf infra.PDFRenderer, logger *zap.Logger, opts ...ExporterOption) *BalanceSheetExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &BalanceSheetExporter{
		builder:  builder,
		html:     html,
		pdf:      pdf,
		location: time.UTC,
		logger:   logger.Named("balance_sheet_export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PDFEnabled reports whether PDF export is available
func (e *BalanceSheetExporter) PDFEnabled() bool {
	return e.pdf != nil
}

// ExportHTML returns the printable HTML page of the tenant's balance sheet
func (e *BalanceSheetExporter) ExportHTML(ctx context.Context, tenantID uuid.UUID) (string, error) {
	_, html, err := e.render(ctx, tenantID)
	return html, err
}

// ExportPDF renders the balance sheet to an A4 PDF
func (e *BalanceSheetExporter) ExportPDF(ctx context.Context, tenantID uuid.UUID) (*ExportedDocument, error) {
	if e.pdf == nil {
		return nil, shared.ErrExportUnavailable
	}

	snapshot, html, err := e.render(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result, err := e.pdf.Render(ctx, &infra.RenderRequest{
		HTML:       html,
		Title:      "Balance Sheet",
		Margins:    infra.DefaultMargins(),
		FooterHTML: pdfFooterTemplate,
	})
	if err != nil {
		e.logger.Error("Failed to render balance sheet PDF",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		if infra.IsRenderTimeout(err) {
			return nil, shared.WrapDomainError(shared.ErrRenderTimeout.Code, shared.ErrRenderTimeout.Message, err)
		}
		return nil, fmt.Errorf("render balance sheet pdf: %w", err)
	}

	doc := &ExportedDocument{
		Filename:  "balance-sheet-" + snapshot.GeneratedAt.In(e.location).Format("2006-01-02") + ".pdf",
		Content:   result.PDFData,
		PageCount: result.PageCount,
	}
	e.archiveDocument(ctx, tenantID, snapshot, doc)
	return doc, nil
}

// archiveDocument stores the PDF when an archive is configured.
// Archive failures are logged and never fail the export.
func (e *BalanceSheetExporter) archiveDocument(ctx context.Context, tenantID uuid.UUID, snapshot *report.BalanceSheetSnapshot, doc *ExportedDocument) {
	if e.archive == nil {
		return
	}

	key := ArchiveKey(tenantID, snapshot.GeneratedAt)
	if err := e.archive.Store(ctx, key, doc.Content, "application/pdf"); err != nil {
		e.logger.Warn("Failed to archive balance sheet PDF",
			zap.String("tenant_id", tenantID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	doc.ArchiveKey = key

	link, _, err := e.archive.DownloadURL(ctx, key, 0)
	if err != nil {
		e.logger.Warn("Failed to presign archived balance sheet",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	doc.ArchiveURL = link
}

// ArchiveKey is the object key of a tenant's balance sheet generated at t
func ArchiveKey(tenantID uuid.UUID, t time.Time) string {
	return "balance-sheets/" + tenantID.String() + "/balance-sheet-" + t.UTC().Format("20060102T150405Z") + ".pdf"
}

func (e *BalanceSheetExporter) render(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheetSnapshot, string, error) {
	snapshot, err := e.builder.BuildBalanceSheet(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	html, err := e.html.Render(snapshot)
	if err != nil {
		return nil, "", fmt.Errorf("render balance sheet html: %w", err)
	}
	return snapshot, html, nil
}
