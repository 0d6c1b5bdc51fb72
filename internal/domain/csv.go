package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV decodes a price table export with a header row. Columns are
// located with MapColumns; extra columns are ignored. Malformed CSV is a
// schema error; a failure of the underlying reader is a connection error.
func ReadCSV(r io.Reader) ([]PriceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file, no header row", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", readError(err))
	}
	idx, err := MapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []PriceRecord
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, readError(err))
		}
		rec, err := ParseRecord(fields, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}
