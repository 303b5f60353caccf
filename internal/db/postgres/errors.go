package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
)

// classify wraps a driver error with the operation and maps server error
// codes onto errors callers can branch on.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.QueryCanceled:
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		case pgerrcode.UndefinedColumn, pgerrcode.UndefinedTable, pgerrcode.SyntaxError:
			err = fmt.Errorf("%w: %w", db.ErrQueryPlan, err)
		}
	}
	return &db.Error{Op: op, Err: err}
}
