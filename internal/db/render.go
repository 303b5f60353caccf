package db

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/predicate"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Render turns a predicate tree into a query plan for e. User input only
// ever reaches Args.
func Render(e *entity.Entity, tree predicate.Node, order []entity.Order, page Pagination) (QueryPlan, error) {
	if page.Page < 1 || page.Limit < 1 {
		return QueryPlan{}, &Error{Op: OpRender, Err: fmt.Errorf("%w: page %d limit %d", ErrQueryPlan, page.Page, page.Limit)}
	}
	if len(order) == 0 {
		return QueryPlan{}, &Error{Op: OpRender, Err: fmt.Errorf("%w: %s: no ordering", ErrQueryPlan, e.Name())}
	}

	where, err := sqlizer(tree)
	if err != nil {
		return QueryPlan{}, &Error{Op: OpRender, Err: err}
	}
	pred, args, err := where.ToSql()
	if err != nil {
		return QueryPlan{}, &Error{Op: OpRender, Err: err}
	}

	outAliases := e.ColumnAliases()
	for _, o := range order {
		outAliases = append(outAliases, o.Alias)
	}

	return QueryPlan{
		Entity:      e.Name(),
		Table:       e.Table(),
		Alias:       e.Alias(),
		KeyExpr:     e.KeyExpr(),
		Columns:     e.Columns(),
		Predicate:   pred,
		Args:        args,
		Joins:       e.JoinsFor(tree.Aliases()...),
		OutputJoins: e.JoinsFor(outAliases...),
		OrderBy:     order,
		Limit:       page.Limit,
		Offset:      page.Offset(),
		Tree:        tree,
	}, nil
}

func sqlizer(n predicate.Node) (sq.Sqlizer, error) {
	switch n.Op() {
	case predicate.OpLeaf:
		l, _ := n.Leaf()
		return leafSqlizer(l)
	case predicate.OpAnd:
		and := sq.And{}
		for _, c := range n.Children() {
			s, err := sqlizer(c)
			if err != nil {
				return nil, err
			}
			and = append(and, s)
		}
		return and, nil
	case predicate.OpOr:
		or := sq.Or{}
		for _, c := range n.Children() {
			s, err := sqlizer(c)
			if err != nil {
				return nil, err
			}
			or = append(or, s)
		}
		return or, nil
	default:
		return nil, fmt.Errorf("%w: unknown node %q", ErrQueryPlan, n.Op())
	}
}

func leafSqlizer(l predicate.Leaf) (sq.Sqlizer, error) {
	f := l.Field()
	switch l.Comparison() {
	case predicate.Contains:
		return like(f.TextExpr(), f.Folds(), l.Value())
	case predicate.ContainsCompact:
		return like("REPLACE("+f.TextExpr()+", ' ', '')", f.Folds(), l.Value())
	case predicate.Equals:
		return sq.Eq{f.Expr(): l.Value()}, nil
	case predicate.OnDay:
		day, ok := l.Value().(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: %s: on_day needs a time, got %T", ErrQueryPlan, f.Name(), l.Value())
		}
		end := day.Add(24*time.Hour - time.Microsecond)
		return sq.Expr(f.Expr()+" BETWEEN ? AND ?", day, end), nil
	case predicate.Approx:
		amount, ok := l.Value().(decimal.Decimal)
		if !ok {
			return nil, fmt.Errorf("%w: %s: approx needs a decimal, got %T", ErrQueryPlan, f.Name(), l.Value())
		}
		return sq.Expr("ABS("+f.Expr()+" - ?) < "+predicate.AmountTolerance.String(), amount.String()), nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown comparison %q", ErrQueryPlan, f.Name(), l.Comparison())
	}
}

func like(expr string, fold bool, value any) (sq.Sqlizer, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: substring needs a string, got %T", ErrQueryPlan, expr, value)
	}
	pattern := "%" + likeEscaper.Replace(s) + "%"
	if fold {
		return sq.ILike{expr: pattern}, nil
	}
	return sq.Like{expr: pattern}, nil
}
