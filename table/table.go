package table

import (
	"fmt"
	"sort"
)

// Row maps column names to cell values. Cells may hold strings, numbers,
// or booleans; a column missing from a row is an empty cell, not an error.
type Row map[string]any

// Table is an ordered-column collection of rows. Columns keep the order in
// which they were first seen; rows keep append order.
type Table struct {
	columns []string
	colSet  map[string]struct{}
	rows    []Row
}

// New returns an empty Table. Any columns given up front fix the leading
// column order; further columns are added by Append as they appear.
func New(columns ...string) *Table {
	t := &Table{colSet: make(map[string]struct{}, len(columns))}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

func (t *Table) addColumn(name string) {
	if _, ok := t.colSet[name]; ok {
		return
	}
	t.colSet[name] = struct{}{}
	t.columns = append(t.columns, name)
}

// Append adds one row. Columns not seen before are appended to the column
// list; when a row introduces several new columns at once they are added in
// sorted order so the resulting layout does not depend on map iteration.
func (t *Table) Append(row Row) {
	var fresh []string
	for name := range row {
		if _, ok := t.colSet[name]; !ok {
			fresh = append(fresh, name)
		}
	}
	sort.Strings(fresh)
	for _, name := range fresh {
		t.addColumn(name)
	}
	t.rows = append(t.rows, row)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colSet[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in order. The slice is a copy but the Row maps are
// shared; callers must not modify them.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Merge inner-joins left and right on the named key column: only rows whose
// key appears on both sides survive, and unmatched rows are silently
// dropped. Output rows follow left's row order, with left's columns leading
// and right's columns (minus the key) following. If several right rows share
// a key, each match produces one output row.
func Merge(left, right *Table, on string) (*Table, error) {
	if !left.HasColumn(on) {
		return nil, fmt.Errorf("table: merge: left side has no column %q", on)
	}
	if !right.HasColumn(on) {
		return nil, fmt.Errorf("table: merge: right side has no column %q", on)
	}

	cols := left.Columns()
	for _, c := range right.Columns() {
		if c != on {
			cols = append(cols, c)
		}
	}
	out := New(cols...)

	byKey := make(map[string][]Row)
	for _, r := range right.rows {
		k := keyString(r[on])
		byKey[k] = append(byKey[k], r)
	}

	for _, lr := range left.rows {
		matches := byKey[keyString(lr[on])]
		for _, rr := range matches {
			merged := make(Row, len(lr)+len(rr))
			for k, v := range lr {
				merged[k] = v
			}
			for k, v := range rr {
				if k == on {
					continue
				}
				merged[k] = v
			}
			out.Append(merged)
		}
	}
	return out, nil
}

// keyString normalizes join-key cells so string and stringable values
// compare equal across CSV-read metadata and in-memory results.
func keyString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
