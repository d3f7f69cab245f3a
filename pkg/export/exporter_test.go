package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersMultipleDatasets(t *testing.T) {
	out, err := NewCSVExporter().Render(
		Dataset{Headers: []string{"Term", "Total"}, Rows: []map[string]string{{"Term": "Term 1", "Total": "140"}}},
		Dataset{Headers: []string{"Subject"}, Rows: []map[string]string{{"Subject": "Matematika"}}},
	)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Term,Total\nTerm 1,140\n")
	assert.Contains(t, string(out), "Subject\nMatematika\n")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewCSVExporter().Render()
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	doc := Document{
		Title:  "Report Card",
		Fields: []Field{{Label: "Name", Value: "Ayu"}},
		Tables: []Table{{Caption: "Terms", Data: Dataset{Headers: []string{"Term", "Status"}, Rows: []map[string]string{{"Term": "Term 1", "Status": "pass"}}}}},
		Footer: "Promoted to next class",
	}
	out, err := NewPDFExporter().Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewLandscapePDFExporter().Render(Document{Title: "empty"})
	assert.Error(t, err)
}
