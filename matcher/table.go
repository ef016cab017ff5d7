package matcher

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is one in-memory tabular dataset: a header row plus data rows.
// Rows may be ragged; cell access through the column mapping tolerates
// short rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable loads a tabular file, dispatching on the extension: .csv, .tsv
// or .xlsx.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported table format %q (want .csv, .tsv or .xlsx)", filepath.Ext(path))
	}
}

// WriteTable writes a tabular file, dispatching on the extension. Unknown
// extensions fall back to CSV.
func WriteTable(path string, t *Table) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, t)
	}
	return writeCSV(path, t)
}

func readDelimited(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty table file")
	}
	return tableFromRecords(records), nil
}

func writeCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	return nil
}

func tableFromRecords(records [][]string) *Table {
	headers := make([]string, len(records[0]))
	for i, cell := range records[0] {
		headers[i] = cleanCell(cell)
	}
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = cleanCell(cell)
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}
