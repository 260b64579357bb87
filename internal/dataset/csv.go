package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadCSV parses a CSV document whose first row names the columns. Blank
// cells are left out of the record so they read as missing.
func ReadCSV(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Missing: allColumns()}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	if missing := missingColumns(func(c string) bool { _, ok := index[c]; return ok }); len(missing) > 0 {
		return nil, &LoadError{Missing: missing}
	}

	var records []RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		rec := make(RawRecord, len(RequiredColumns))
		for _, c := range RequiredColumns {
			i := index[c]
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				rec[c] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
