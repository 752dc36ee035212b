package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campuskeep/outpass-api/internal/models"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
	"github.com/campuskeep/outpass-api/pkg/export"
	"github.com/campuskeep/outpass-api/pkg/storage"
)

// ReportFormat names a supported export encoding.
type ReportFormat string

const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

type reportOutpassStore interface {
	ListAll(ctx context.Context, hostel string) ([]models.Outpass, error)
}

// Report is a rendered export ready to be written to the response.
type Report struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ReportService renders the outpass history into downloadable documents.
// Rendered reports are also copied into the archive when one is configured.
type ReportService struct {
	outpasses reportOutpassStore
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	archive   *storage.Archive
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs a ReportService. A nil archive disables
// report retention.
func NewReportService(outpasses reportOutpassStore, archive *storage.Archive, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		outpasses: outpasses,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		archive:   archive,
		logger:    logger,
		now:       time.Now,
	}
}

// OutpassHistory exports every outpass record in the requested format.
func (s *ReportService) OutpassHistory(ctx context.Context, format ReportFormat) (*Report, error) {
	records, err := s.outpasses.ListAll(ctx, "")
	if err != nil {
		return nil, storeFailure(err, "failed to load outpass history")
	}
	dataset := outpassDataset(records)

	stamp := s.now().UTC().Format("20060102-150405")
	var report *Report
	switch format {
	case FormatCSV:
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		report = &Report{
			FileName:    fmt.Sprintf("outpass-report-%s.csv", stamp),
			ContentType: "text/csv",
			Body:        body,
		}
	case FormatPDF:
		body, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		report = &Report{
			FileName:    fmt.Sprintf("outpass-report-%s.pdf", stamp),
			ContentType: "application/pdf",
			Body:        body,
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}

	if s.archive != nil {
		if path, err := s.archive.Save(report.FileName, report.Body); err != nil {
			s.logger.Warn("failed to archive report", zap.String("file", report.FileName), zap.Error(err))
		} else {
			s.logger.Info("report archived", zap.String("path", path))
		}
	}
	return report, nil
}

func outpassDataset(records []models.Outpass) export.Dataset {
	dataset := export.Dataset{
		Title: "Outpass History Report",
		Headers: []string{
			"Roll Number", "Resident", "Hostel", "Destination",
			"Leave Start", "Expected Return", "Actual Return", "Status", "Late",
		},
		Rows: make([][]string, 0, len(records)),
	}
	for _, o := range records {
		late := ""
		if o.IsLateReturn != nil && *o.IsLateReturn {
			late = "YES"
		}
		dataset.Rows = append(dataset.Rows, []string{
			o.RollNumber,
			o.ResidentName,
			o.HostelName,
			o.Destination,
			formatStamp(&o.LeaveStartAt),
			formatStamp(&o.ExpectedReturnAt),
			formatStamp(o.ActualReturnAt),
			string(o.Status),
			late,
		})
	}
	return dataset
}

func formatStamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// ParseReportFormat normalizes a query value into a supported format.
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FormatCSV):
		return FormatCSV, nil
	case string(FormatPDF):
		return FormatPDF, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", raw))
}
