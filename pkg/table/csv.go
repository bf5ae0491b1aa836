package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV decodes CSV data into a Table. The first record is the header row.
// Records with a deviating field count are accepted and recorded as ragged
// rather than rejected, because spreadsheet exports routinely emit them.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}

	return New(headers, records), nil
}
