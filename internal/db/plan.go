package db

import (
	"math"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/predicate"
)

// Pagination is a validated 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before the page. It saturates
// at math.MaxInt so a huge page reads past the end instead of wrapping.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// QueryPlan is a rendered, parameterized search over one entity.
// Predicate holds only '?' placeholders; every literal is in Args.
type QueryPlan struct {
	Entity  string
	Table   string
	Alias   string
	KeyExpr string
	Columns []entity.Column

	Predicate string
	Args      []any
	// Joins are the joins the predicate reads.
	Joins []entity.Join
	// OutputJoins are the joins the selected columns and ordering read.
	OutputJoins []entity.Join
	OrderBy     []entity.Order

	Limit  int
	Offset int

	// Tree is the predicate the SQL was rendered from, for sources that
	// evaluate plans without SQL.
	Tree predicate.Node
}

// Unpaged returns a copy of the plan without limit and offset, for counting.
func (p QueryPlan) Unpaged() QueryPlan {
	p.Limit = 0
	p.Offset = 0
	return p
}
