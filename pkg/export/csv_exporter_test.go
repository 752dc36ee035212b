package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	body, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Hostel"},
		Rows: [][]string{
			{"Ananya Rao", "North Block"},
			{"Dev, Patel", "South Block"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Hostel", lines[0])
	// Values containing the delimiter must come out quoted.
	assert.Equal(t, `"Dev, Patel",South Block`, lines[2])
}

func TestCSVExporterColumnMismatch(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Hostel"},
		Rows:    [][]string{{"only one"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
