package db

import (
	sq "github.com/Masterminds/squirrel"
)

// SelectSQL assembles the page query. Base rows are selected by key from the
// filtered key set so one-to-many joins never duplicate or drop rows.
func (p QueryPlan) SelectSQL() (string, []any, error) {
	keys := sq.Select(p.KeyExpr).From(p.Table + " " + p.Alias)
	for _, j := range p.Joins {
		keys = keys.JoinClause(j.Clause)
	}
	subSQL, subArgs, err := keys.Where(sq.Expr(p.Predicate, p.Args...)).ToSql()
	if err != nil {
		return "", nil, &Error{Op: OpSelect, Err: err}
	}

	cols := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		cols = append(cols, c.Expr+" AS "+c.Name)
	}
	q := sq.Select(cols...).From(p.Table + " " + p.Alias)
	for _, j := range p.OutputJoins {
		q = q.JoinClause(j.Clause)
	}
	q = q.Where(sq.Expr(p.KeyExpr+" IN ("+subSQL+")", subArgs...))
	for _, o := range p.OrderBy {
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		q = q.OrderBy(o.Expr + dir)
	}
	if p.Limit > 0 {
		q = q.Limit(uint64(p.Limit)).Offset(uint64(p.Offset))
	}

	query, args, err := q.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return "", nil, &Error{Op: OpSelect, Err: err}
	}
	return query, args, nil
}

// CountSQL assembles the total query with the same predicate and arguments.
func (p QueryPlan) CountSQL() (string, []any, error) {
	q := sq.Select("COUNT(DISTINCT " + p.KeyExpr + ")").From(p.Table + " " + p.Alias)
	for _, j := range p.Joins {
		q = q.JoinClause(j.Clause)
	}
	query, args, err := q.Where(sq.Expr(p.Predicate, p.Args...)).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return "", nil, &Error{Op: OpCount, Err: err}
	}
	return query, args, nil
}
