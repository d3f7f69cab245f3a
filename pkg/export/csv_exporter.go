package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for one or more datasets. Consecutive
// datasets are separated by an empty record.
func (e *CSVExporter) Render(sets ...Dataset) ([]byte, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("csv requires at least one dataset")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for i, data := range sets {
		if len(data.Headers) == 0 {
			return nil, fmt.Errorf("csv dataset %d requires at least one header", i)
		}
		if i > 0 {
			if err := writer.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		if err := writer.Write(data.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range data.Rows {
			record := make([]string, len(data.Headers))
			for j, header := range data.Headers {
				record[j] = row[header]
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
