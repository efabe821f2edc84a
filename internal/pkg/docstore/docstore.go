// Package docstore defines the spreadsheet-shaped persistence contract: a set of
// named relations, each a flat table of text cells. Adapters live under
// internal/repository.
package docstore

import (
	"context"
	"errors"
	"fmt"
)

// Relation names
const (
	RelationEmployees    = "Employees"
	RelationRecords      = "Records"
	RelationSettings     = "Settings"
	RelationLeaveRecords = "LeaveRecords"
)

// ErrStoreUnavailable wraps every transport or backend failure of an adapter.
var ErrStoreUnavailable = errors.New("document store unavailable")

// Row maps column name to cell text.
type Row map[string]string

// Table is the full content of one relation.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given header.
func NewTable(columns ...string) Table {
	return Table{Columns: columns}
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Append adds a row built from cells in column order.
func (t *Table) Append(cells ...string) {
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(cells) {
			row[col] = cells[i]
		}
	}
	t.Rows = append(t.Rows, row)
}

// Values renders the table as a header row followed by data rows.
func (t Table) Values() [][]string {
	values := make([][]string, 0, len(t.Rows)+1)
	values = append(values, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		line := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			line[i] = row[col]
		}
		values = append(values, line)
	}
	return values
}

// FromValues is the inverse of Values. The first line is the header; blank
// lines are skipped and short lines are padded with empty cells.
func FromValues(values [][]string) Table {
	if len(values) == 0 {
		return Table{}
	}
	t := Table{Columns: append([]string(nil), values[0]...)}
	for _, line := range values[1:] {
		if isBlank(line) {
			continue
		}
		t.Append(line...)
	}
	return t
}

func isBlank(line []string) bool {
	for _, cell := range line {
		if cell != "" {
			return false
		}
	}
	return true
}

// Store reads and writes whole relations.
//
// Read returns an empty Table and a nil error when the relation is missing or
// empty. Write replaces the full content of the relation; a failed Write leaves
// the previous content in place.
type Store interface {
	Read(ctx context.Context, relation string) (Table, error)
	Write(ctx context.Context, relation string, table Table) error
	List(ctx context.Context) ([]string, error)
}

// Unavailable wraps err so that errors.Is(err, ErrStoreUnavailable) holds.
func Unavailable(op, relation string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStoreUnavailable, op, relation, err)
}
