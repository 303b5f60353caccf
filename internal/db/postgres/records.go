package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

// Fetch runs the page query of the plan.
func (s *Store) Fetch(ctx context.Context, plan db.QueryPlan) ([]record.Record, error) {
	sql, args, err := plan.SelectSQL()
	if err != nil {
		return nil, err
	}
	rows, err := s.collect(ctx, db.OpSelect, sql, args)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Count runs the distinct count of the plan.
func (s *Store) Count(ctx context.Context, plan db.QueryPlan) (int64, error) {
	sql, args, err := plan.Unpaged().CountSQL()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, classify(db.OpCount, err)
	}
	return n, nil
}

// Query runs an ad-hoc parameterized statement and returns its rows.
func (s *Store) Query(ctx context.Context, sql string, args ...any) ([]record.Record, error) {
	return s.collect(ctx, db.OpQuery, sql, args)
}

func (s *Store) collect(ctx context.Context, op, sql string, args []any) ([]record.Record, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify(op, err)
	}

	out := make([]record.Record, 0, len(maps))
	for _, m := range maps {
		for k, v := range m {
			m[k] = normalize(v)
		}
		out = append(out, record.Record(m))
	}
	return out, nil
}

// normalize converts driver-specific values into plain Go types.
func normalize(v any) any {
	n, ok := v.(pgtype.Numeric)
	if !ok {
		return v
	}
	if !n.Valid {
		return nil
	}
	raw, err := n.Value()
	if err != nil {
		return v
	}
	s, ok := raw.(string)
	if !ok {
		return v
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return v
	}
	return d
}
