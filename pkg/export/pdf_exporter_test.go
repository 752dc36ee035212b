package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	body, err := exporter.Render(Dataset{
		Title:   "Outpass History Report",
		Headers: []string{"Name", "Hostel", "Status"},
		Rows: [][]string{
			{"Ananya Rao", "North Block", "COMPLETED"},
			{"Dev Patel", "South Block", "PENDING"},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
	assert.Greater(t, len(body), 500)
}

func TestPDFExporterColumnMismatch(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{
		Headers: []string{"Name", "Hostel"},
		Rows:    [][]string{{"only one"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{Title: "Empty"})
	assert.Error(t, err)
}
