// Package reporting renders the drivers roster into PDF and CSV reports.
// Both generators share one column schema so the formats never drift.
package reporting

import (
	"fmt"

	"gridbook/pkg/openf1"
)

// NA is the placeholder rendered for any value the source did not provide.
const NA = "N/A"

// Column describes one table column: its header label, its PDF width in
// millimeters, and how to extract the cell text from a driver record.
type Column struct {
	Header string
	Width  float64
	Value  func(d openf1.Driver) string
}

// Columns returns the report's column schema, in render order. The image
// column is separate; see Row.Asset.
func Columns() []Column {
	return []Column{
		{Header: "Driver #", Width: 21.2, Value: func(d openf1.Driver) string { return intOrNA(d.Number) }},
		{Header: "Full Name", Width: 52.9, Value: func(d openf1.Driver) string {
			return textOrNA(d.FirstName) + " " + textOrNA(d.LastName)
		}},
		{Header: "Abbreviation", Width: 28.2, Value: func(d openf1.Driver) string { return textOrNA(d.Acronym) }},
		{Header: "Team", Width: 49.4, Value: func(d openf1.Driver) string { return textOrNA(d.TeamName) }},
		{Header: "DOB", Width: 35.3, Value: func(d openf1.Driver) string { return textOrNA(d.DOB) }},
		{Header: "Nationality", Width: 35.3, Value: func(d openf1.Driver) string { return textOrNA(d.CountryCode) }},
	}
}

func textOrNA(s *string) string {
	if s == nil || *s == "" {
		return NA
	}
	return *s
}

func intOrNA(n *int) string {
	if n == nil {
		return NA
	}
	return fmt.Sprintf("%d", *n)
}
