// Package dataset reads customer CSV files into raw rows for scoring.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/churnlens/schema"
)

// Dataset holds the parsed contents of a customer CSV file. Rows and IDs
// are index-aligned; IDs is empty when the file has no ID column.
type Dataset struct {
	Rows    []schema.RawRow
	IDs     []string
	Columns []string
}

// ReadFile loads a CSV dataset from disk. The idColumn value is extracted
// per row and removed from the feature columns; targetCol (the training
// label, if present) is dropped entirely since it must never leak into
// scoring. Either may be absent from the file.
func ReadFile(path, idColumn, targetCol string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, idColumn, targetCol)
}

// Read parses CSV content from a reader. Header names are whitespace
// trimmed; ragged rows are rejected by the csv reader itself.
func Read(r io.Reader, idColumn, targetCol string) (*Dataset, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idIdx, targetIdx := -1, -1
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[i] = name
		switch name {
		case idColumn:
			idIdx = i
		case targetCol:
			targetIdx = i
		}
	}

	ds := &Dataset{Columns: featureColumns(columns, idIdx, targetIdx)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(ds.Rows)+1, err)
		}

		row := make(schema.RawRow, len(columns))
		for i, cell := range record {
			if i == idIdx || i == targetIdx {
				continue
			}
			row[columns[i]] = cell
		}
		ds.Rows = append(ds.Rows, row)
		if idIdx >= 0 {
			ds.IDs = append(ds.IDs, record[idIdx])
		}
	}

	return ds, nil
}

// featureColumns filters the ID and target columns out of the header.
func featureColumns(columns []string, idIdx, targetIdx int) []string {
	out := make([]string, 0, len(columns))
	for i, name := range columns {
		if i == idIdx || i == targetIdx {
			continue
		}
		out = append(out, name)
	}
	return out
}
