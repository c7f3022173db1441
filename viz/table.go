package viz

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a single table cell holding either text or a number.
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
}

// Number makes a numeric cell.
func Number(v float64) Value {
	return Value{Number: v, IsNumber: true}
}

// Text makes a text cell.
func Text(s string) Value {
	return Value{Text: s}
}

// ParseValue makes a numeric cell when the string parses as a float and a
// text cell otherwise.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(v)
	}
	return Text(trimmed)
}

// Key returns a canonical string used for grouping and legend labels.
func (v Value) Key() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Text
}

// String renders the cell for display.
func (v Value) String() string {
	return v.Key()
}

// Table is an ordered collection of named columns over typed cells. It is
// the tabular input of the atlas plotter; filtering always produces a new
// table and never mutates the receiver.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable creates an empty table with the given column names.
func NewTable(columns ...string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Table{columns: append([]string(nil), columns...), index: idx}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow adds a row; the cell count must match the column count.
func (t *Table) AppendRow(cells ...Value) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("table: row has %d cells, want %d", len(cells), len(t.columns))
	}
	t.rows = append(t.rows, append([]Value(nil), cells...))
	return nil
}

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Column returns a copy of the named column. Missing columns produce a
// lookup error which callers propagate unchanged.
func (t *Table) Column(name string) ([]Value, error) {
	i, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats converts the named column to float64, erroring on non-numeric cells.
func (t *Table) Floats(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if !v.IsNumber {
			return nil, fmt.Errorf("table: column %q row %d is not numeric (%q)", name, i, v.Text)
		}
		out[i] = v.Number
	}
	return out, nil
}

// Ints converts the named column to int, erroring on non-numeric cells.
func (t *Table) Ints(name string) ([]int, error) {
	floats, err := t.Floats(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(floats))
	for i, f := range floats {
		out[i] = int(f)
	}
	return out, nil
}

// Clone deep copies the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.columns...)
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = append([]Value(nil), row...)
	}
	return out
}

func (t *Table) columnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("table: no column %q", name)
	}
	return i, nil
}

func (t *Table) selectRows(indices []int) *Table {
	out := NewTable(t.columns...)
	out.rows = make([][]Value, 0, len(indices))
	for _, i := range indices {
		out.rows = append(out.rows, append([]Value(nil), t.rows[i]...))
	}
	return out
}
