package enrichment

import (
	"context"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

type call struct {
	sql  string
	args []any
}

type mockQuerier struct {
	rows  []record.Record
	err   error
	calls []call
}

func (m *mockQuerier) Query(_ context.Context, sql string, args ...any) ([]record.Record, error) {
	m.calls = append(m.calls, call{sql: sql, args: args})
	return m.rows, m.err
}
