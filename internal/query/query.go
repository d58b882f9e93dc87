package query

import (
	"context"
	"time"
)

// TableFile binds a view name used in SQL to a remote parquet file.
type TableFile struct {
	TableName string
	Location  string
}

type Request struct {
	SQL   string
	Files []TableFile
}

// Result is a fully materialized, read-only result set.
type Result struct {
	Columns      []string
	Rows         [][]any
	ScannedFiles int
	ScannedBytes int64
	Duration     time.Duration
}

type Engine interface {
	Execute(ctx context.Context, request Request) (Result, error)
}

func (r Result) Len() int {
	return len(r.Rows)
}

// ColumnIndex returns the position of the first column with the given name,
// or -1. Joined results may repeat a name; the left side wins.
func (r Result) ColumnIndex(name string) int {
	for i, column := range r.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// Value returns the named column of row i. ok is false when the row or the
// column does not exist.
func (r Result) Value(row int, column string) (any, bool) {
	if row < 0 || row >= len(r.Rows) {
		return nil, false
	}
	index := r.ColumnIndex(column)
	if index < 0 || index >= len(r.Rows[row]) {
		return nil, false
	}
	return r.Rows[row][index], true
}
