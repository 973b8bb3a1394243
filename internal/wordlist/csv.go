package wordlist

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads a CSV file whose first row is a header.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseTable(rows)
}
