package models

import "fmt"

// Row is one table row: its index key and one value per column.
type Row struct {
	Key    Value
	Values []Value
}

// Table is the tabular result returned by the market data client. Rows keep
// the order the upstream source returned them in.
type Table struct {
	IndexName string
	Columns   []string
	Rows      []Row
}

// NewTable creates an empty table with the given index name and columns.
func NewTable(indexName string, columns ...string) *Table {
	return &Table{IndexName: indexName, Columns: columns}
}

// Append adds a row.
func (t *Table) Append(key Value, values ...Value) {
	t.Rows = append(t.Rows, Row{Key: key, Values: values})
}

// Len returns the number of rows; a nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Validate checks the table shape: unique column names that do not clash
// with the index name, and one value per column in every row.
func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("table is nil")
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c == "" {
			return fmt.Errorf("table has an unnamed column")
		}
		if seen[c] {
			return fmt.Errorf("duplicate column %q", c)
		}
		if c == t.IndexName {
			return fmt.Errorf("column %q clashes with the index name", c)
		}
		seen[c] = true
	}
	for i, r := range t.Rows {
		if len(r.Values) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(r.Values), len(t.Columns))
		}
	}
	return nil
}
