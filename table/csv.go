package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// MetadataKeyColumn is the column external metadata must carry so it can be
// joined against batch results. Values are filenames including extension,
// without any directory component.
const MetadataKeyColumn = "file"

// WriteCSV writes the table to w with a header row. Empty cells are written
// as empty strings; floats use the shortest representation that round-trips.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}
	record := make([]string, len(t.columns))
	for i, row := range t.rows {
		for j, col := range t.columns {
			record[j] = formatCell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("table: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to path, overwriting any existing file.
func (t *Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("table: create %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV reads a CSV file with a header row into a Table. All cells are
// kept as strings.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("table: read header of %s: %w", path, err)
	}
	t := New(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: read %s: %w", path, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Append(row)
	}
	return t, nil
}

// ReadMetadata reads an external metadata file and verifies it carries the
// required key column.
func ReadMetadata(path string) (*Table, error) {
	t, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if !t.HasColumn(MetadataKeyColumn) {
		return nil, fmt.Errorf("table: metadata %s: missing required column %q", path, MetadataKeyColumn)
	}
	return t, nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	default:
		return fmt.Sprint(x)
	}
}
