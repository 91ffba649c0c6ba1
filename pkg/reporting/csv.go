package reporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// CSVGenerator renders resolved rows as a flat CSV export. It shares the
// column schema with the PDF generator; image assets are not exported.
type CSVGenerator struct {
	reportID string
	columns  []Column
}

// NewCSVGenerator creates a CSV generator stamped with the given report id.
func NewCSVGenerator(reportID string) *CSVGenerator {
	return &CSVGenerator{
		reportID: reportID,
		columns:  Columns(),
	}
}

// Generate creates the CSV report from the provided rows.
func (g *CSVGenerator) Generate(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := g.writeSummary(w, len(rows)); err != nil {
		return nil, fmt.Errorf("write CSV summary section: %w", err)
	}
	if err := g.writeData(w, rows); err != nil {
		return nil, fmt.Errorf("write CSV data section: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV write error: %w", err)
	}

	return buf.Bytes(), nil
}

// writeSummary writes the comment rows describing the report.
func (g *CSVGenerator) writeSummary(w *csv.Writer, count int) error {
	summary := [][]string{
		{"# " + reportTitle},
		{"# Report ID:", g.reportID},
		{"# Generated:", time.Now().Format(time.RFC3339)},
		{"# Drivers:", fmt.Sprintf("%d", count)},
		{""}, // Empty row as separator
	}

	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write summary row %q: %w", row[0], err)
		}
	}
	return nil
}

// writeData writes the column headers and one line per row.
func (g *CSVGenerator) writeData(w *csv.Writer, rows []Row) error {
	headers := make([]string, 0, len(g.columns))
	for _, col := range g.columns {
		headers = append(headers, col.Header)
	}
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write column headers: %w", err)
	}

	for i, row := range rows {
		if err := w.Write(row.Cells); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return nil
}
