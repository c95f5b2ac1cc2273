package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseTimestamp parses a timestamp column. Resource rows store created_at
// and updated_at as RFC3339 strings in UTC.
func parseTimestamp(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", column, err)
	}
	return t, nil
}

// appendLimitOffset appends LIMIT and OFFSET clauses for resource and
// attribute filter paging. Zero values leave the query unbounded.
func appendLimitOffset(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
