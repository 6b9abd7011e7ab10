// Package query builds parameterised Spanner SELECT statements.
package query

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction is an ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) sql() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

type orderKey struct {
	column    string
	direction Direction
}

// Builder is an immutable SELECT builder; every method returns a copy.
// Parameter names for conditions are generated (@p0, @p1, ...) so callers
// never have to keep SQL and params in sync by hand.
type Builder struct {
	table      string
	columns    []string
	conditions []Condition
	ordering   []orderKey
	limit      int64
	offset     int64
}

// From starts a statement against table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to the projection. No columns means SELECT *.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.columns = append(nb.columns, columns...)
	return nb
}

// Where adds a condition; conditions are joined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.conditions = append(nb.conditions, condition)
	return nb
}

// OrderBy appends a sort key. Later calls break ties of earlier ones.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.ordering = append(nb.ordering, orderKey{column: column, direction: direction})
	return nb
}

// Limit caps the number of rows. Zero means no limit.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limit = limit
	return nb
}

// Offset skips rows. Zero means no offset.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offset = offset
	return nb
}

// Page sets LIMIT/OFFSET for a 1-based page number. An offset beyond
// math.MaxInt64 is clamped to it, which still selects no rows.
func (b *Builder) Page(pageNumber, pageSize int) *Builder {
	if pageNumber < 1 || pageSize < 1 {
		return b.Limit(0).Offset(0)
	}
	skip, size := int64(pageNumber-1), int64(pageSize)
	offset := int64(math.MaxInt64)
	if skip <= math.MaxInt64/size {
		offset = skip * size
	}
	return b.Limit(size).Offset(offset)
}

// Count derives a COUNT(*) statement over the same table and conditions,
// without ordering or pagination.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.columns = []string{"COUNT(*)"}
	nb.ordering = nil
	nb.limit = 0
	nb.offset = 0
	return nb
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sb strings.Builder
	params := make(map[string]interface{})

	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.conditions) > 0 {
		parts := make([]string, 0, len(b.conditions))
		next := 0
		for _, cond := range b.conditions {
			fragment, condParams := cond.SQL(next)
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			next += len(condParams)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.ordering) > 0 {
		keys := make([]string, len(b.ordering))
		for i, k := range b.ordering {
			keys[i] = k.column + " " + k.direction.sql()
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(keys, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}
	if b.offset > 0 {
		sb.WriteString(" OFFSET @offset")
		params["offset"] = b.offset
	}

	return spanner.Statement{SQL: sb.String(), Params: params}
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table:      b.table,
		columns:    append([]string(nil), b.columns...),
		conditions: append([]Condition(nil), b.conditions...),
		ordering:   append([]orderKey(nil), b.ordering...),
		limit:      b.limit,
		offset:     b.offset,
	}
}

// String is for debug logging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
