package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVParser parses CSV scorecard files.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data and returns a Scorecard.
func (p *CSVParser) Parse(data []byte) (*Scorecard, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", ErrMalformedScorecard, err)
	}
	return parseRecords(records)
}
