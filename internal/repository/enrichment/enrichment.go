// Package enrichment loads related data attached to search results after
// matching: contacts, addresses, order totals and customer summaries.
package enrichment

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

// querier is the consumer interface for ad-hoc lookups (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) ([]record.Record, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// idOf reads an integer key from a record. Rows from JSON fixtures carry
// float64 keys, rows from Postgres int64.
func idOf(rec record.Record, key string) (int64, bool) {
	switch v := rec[key].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func cacheKey(name string, id int64) string {
	return name + ":" + strconv.FormatInt(id, 10)
}

func query(ctx context.Context, q querier, b sq.Sqlizer) ([]record.Record, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []record.Record{}
	}
	return rows, nil
}
