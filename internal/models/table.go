package models

import (
	"fmt"
	"strings"
)

// RawTable is a grid of string cells as delivered by an extraction
// collaborator. A non-nil Header makes the table named; otherwise columns
// are addressed by position only. Every row, and the header, has Width cells.
type RawTable struct {
	Source string
	Header []string
	Rows   [][]string
}

// NewNamedTable builds a table whose header labels each column. Labels are
// trimmed and lower-cased; ragged rows are padded with empty cells.
func NewNamedTable(header []string, rows [][]string) *RawTable {
	h := make([]string, len(header))
	for i, name := range header {
		h[i] = strings.ToLower(strings.TrimSpace(name))
	}
	t := &RawTable{Header: h, Rows: copyRows(rows)}
	t.pad()
	return t
}

// NewPositionalTable builds a table with no trustworthy header.
func NewPositionalTable(rows [][]string) *RawTable {
	t := &RawTable{Rows: copyRows(rows)}
	t.pad()
	return t
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (t *RawTable) pad() {
	w := t.Width()
	if t.Header != nil {
		for len(t.Header) < w {
			t.Header = append(t.Header, "")
		}
	}
	for i := range t.Rows {
		for len(t.Rows[i]) < w {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
}

// Named reports whether the table carries a header row.
func (t *RawTable) Named() bool {
	return t.Header != nil
}

// Width is the column count of the widest row.
func (t *RawTable) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// ColumnNames returns the lower-cased header, or col_0..col_n for
// positional tables.
func (t *RawTable) ColumnNames() []string {
	if t.Named() {
		return t.Header
	}
	names := make([]string, t.Width())
	for i := range names {
		names[i] = fmt.Sprintf("col_%d", i)
	}
	return names
}

// Grid returns every row as plain cells. For named tables the header row
// comes first, so positional scanners can rediscover it.
func (t *RawTable) Grid() [][]string {
	if !t.Named() {
		return t.Rows
	}
	grid := make([][]string, 0, len(t.Rows)+1)
	grid = append(grid, t.Header)
	return append(grid, t.Rows...)
}

// NamedRow is a by-column-name view of one row of a named table.
type NamedRow struct {
	index map[string]int
	cells []string
}

// NamedRows returns a by-name view of each data row. It returns nil for
// positional tables.
func (t *RawTable) NamedRows() []NamedRow {
	if !t.Named() {
		return nil
	}
	index := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	out := make([]NamedRow, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = NamedRow{index: index, cells: r}
	}
	return out
}

// Get returns the cell under column name, or "" if the column is absent.
func (r NamedRow) Get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}
