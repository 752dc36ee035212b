package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskeep/outpass-api/internal/models"
	appErrors "github.com/campuskeep/outpass-api/pkg/errors"
)

type fakeReportStore struct {
	records []models.Outpass
}

func (f *fakeReportStore) ListAll(context.Context, string) ([]models.Outpass, error) {
	return f.records, nil
}

func reportFixtures() []models.Outpass {
	late := true
	returned := time.Date(2026, 3, 11, 18, 30, 0, 0, time.UTC)
	return []models.Outpass{
		{
			RollNumber:       "CS2021042",
			ResidentName:     "Ananya Rao",
			HostelName:       "North Block",
			Destination:      "Home town",
			LeaveStartAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			ExpectedReturnAt: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
			ActualReturnAt:   &returned,
			Status:           models.StatusCompleted,
			IsLateReturn:     &late,
		},
		{
			RollNumber:       "EE2022007",
			ResidentName:     "Dev Patel",
			HostelName:       "South Block",
			Destination:      "City hospital",
			LeaveStartAt:     time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC),
			ExpectedReturnAt: time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
			Status:           models.StatusPending,
		},
	}
}

func TestReportServiceCSV(t *testing.T) {
	svc := NewReportService(&fakeReportStore{records: reportFixtures()}, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC) }

	report, err := svc.OutpassHistory(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "outpass-report-20260315-103000.csv", report.FileName)
	assert.Equal(t, "text/csv", report.ContentType)

	lines := strings.Split(strings.TrimSpace(string(report.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Roll Number")
	assert.Contains(t, lines[1], "CS2021042")
	assert.Contains(t, lines[1], "2026-03-11 18:30")
	assert.Contains(t, lines[1], "YES")
	assert.Contains(t, lines[2], "PENDING")
	// A record that never returned leaves the actual return cell empty.
	assert.NotContains(t, lines[2], "YES")
}

func TestReportServicePDF(t *testing.T) {
	svc := NewReportService(&fakeReportStore{records: reportFixtures()}, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC) }

	report, err := svc.OutpassHistory(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "outpass-report-20260315-103000.pdf", report.FileName)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, strings.HasPrefix(string(report.Body), "%PDF"))
}

func TestReportServiceUnknownFormat(t *testing.T) {
	svc := NewReportService(&fakeReportStore{}, nil, nil)

	_, err := svc.OutpassHistory(context.Background(), ReportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParseReportFormat(t *testing.T) {
	format, err := ParseReportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = ParseReportFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)

	_, err = ParseReportFormat("docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
