package db

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/predicate"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/token"
)

func render(t *testing.T, q string, names []string, m mode.Mode, page Pagination) QueryPlan {
	t.Helper()
	e := testEntity()
	tree := predicate.Plan(token.Tokenize(q), e.ResolveFields(names), m)
	p, err := Render(e, tree, e.Ordering(request.Sort{}), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestRender_MultiWord(t *testing.T) {
	p := render(t, "John Smith", nil, mode.Partial, Pagination{Page: 1, Limit: 10})

	want := "((c.name ILIKE ? OR c.owner_name ILIKE ?) AND (c.name ILIKE ? OR c.owner_name ILIKE ?))"
	if p.Predicate != want {
		t.Errorf("Predicate = %q, want %q", p.Predicate, want)
	}
	wantArgs := []any{"%john%", "%john%", "%smith%", "%smith%"}
	if diff := cmp.Diff(wantArgs, p.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if len(p.Joins) != 0 {
		t.Errorf("no joins expected, got %+v", p.Joins)
	}
}

func TestRender_PlaceholderPerLeaf(t *testing.T) {
	p := render(t, "100", []string{"name", "id"}, mode.Partial, Pagination{Page: 1, Limit: 10})

	want := "(c.name ILIKE ? OR CAST(c.id AS TEXT) LIKE ? OR c.id = ?)"
	if p.Predicate != want {
		t.Errorf("Predicate = %q, want %q", p.Predicate, want)
	}
	wantArgs := []any{"%100%", "%100%", int64(100)}
	if diff := cmp.Diff(wantArgs, p.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NoInterpolation(t *testing.T) {
	hostile := "x' OR 1=1; DROP TABLE customers; --"
	p := render(t, hostile, []string{"name", "code"}, mode.Exact, Pagination{Page: 1, Limit: 10})

	for _, bad := range []string{"DROP", "1=1", "'x"} {
		if strings.Contains(p.Predicate, bad) {
			t.Errorf("predicate %q contains user input %q", p.Predicate, bad)
		}
	}
	if len(p.Args) != 3 {
		t.Errorf("len(Args) = %d, want 3", len(p.Args))
	}
}

func TestRender_EscapesWildcards(t *testing.T) {
	p := render(t, `50%_off\`, []string{"name"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if diff := cmp.Diff([]any{`%50\%\_off\\%`}, p.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Compact(t *testing.T) {
	p := render(t, "ab 12", []string{"code"}, mode.Phrase, Pagination{Page: 1, Limit: 10})
	want := "(c.code ILIKE ? OR REPLACE(c.code, ' ', '') ILIKE ?)"
	if p.Predicate != want {
		t.Errorf("Predicate = %q, want %q", p.Predicate, want)
	}
	if diff := cmp.Diff([]any{"%ab 12%", "%ab12%"}, p.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DateAndAmount(t *testing.T) {
	p := render(t, "2024-01-15", []string{"created"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if p.Predicate != "(c.created_at BETWEEN ? AND ?)" {
		t.Errorf("Predicate = %q", p.Predicate)
	}
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 23, 59, 59, 999999000, time.UTC)
	if diff := cmp.Diff([]any{start, end}, p.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}

	p = render(t, "$45.00", []string{"balance"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if p.Predicate != "(ABS(c.balance - ?) < 0.01)" {
		t.Errorf("Predicate = %q", p.Predicate)
	}
	if diff := cmp.Diff([]any{"45"}, p.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_JoinsOnlyWhenReferenced(t *testing.T) {
	p := render(t, "ann", []string{"name"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if len(p.Joins) != 0 {
		t.Errorf("unexpected joins %+v", p.Joins)
	}

	p = render(t, "ann", []string{"contact_name"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if len(p.Joins) != 1 || p.Joins[0].Alias != "ct" {
		t.Errorf("expected contacts join, got %+v", p.Joins)
	}
	if len(p.OutputJoins) != 0 {
		t.Errorf("output should not join contacts, got %+v", p.OutputJoins)
	}
}

func TestRender_UnmatchableRendersFalse(t *testing.T) {
	p := render(t, "2024-01-15", []string{"name"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if p.Predicate != "(1=0)" || len(p.Args) != 0 {
		t.Errorf("Predicate = %q Args = %v", p.Predicate, p.Args)
	}
}

func TestRender_Pagination(t *testing.T) {
	p := render(t, "ann", nil, mode.Partial, Pagination{Page: 3, Limit: 25})
	if p.Limit != 25 || p.Offset != 50 {
		t.Errorf("Limit=%d Offset=%d, want 25, 50", p.Limit, p.Offset)
	}
	u := p.Unpaged()
	if u.Limit != 0 || u.Offset != 0 || u.Predicate != p.Predicate {
		t.Errorf("Unpaged() = %+v", u)
	}
}

func TestPagination_OffsetSaturates(t *testing.T) {
	tests := []struct {
		name string
		page Pagination
		want int
	}{
		{"first page", Pagination{Page: 1, Limit: 10}, 0},
		{"third page", Pagination{Page: 3, Limit: 25}, 50},
		{"largest exact", Pagination{Page: math.MaxInt/10 + 1, Limit: 10}, math.MaxInt / 10 * 10},
		{"overflowing page", Pagination{Page: 1_000_000_000_000_000_000, Limit: 10}, math.MaxInt},
		{"max page", Pagination{Page: math.MaxInt, Limit: 100}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRender_Invalid(t *testing.T) {
	e := testEntity()
	tree := predicate.Or()
	if _, err := Render(e, tree, e.Ordering(request.Sort{}), Pagination{Page: 0, Limit: 10}); !errors.Is(err, ErrQueryPlan) {
		t.Errorf("error = %v, want ErrQueryPlan", err)
	}
	if _, err := Render(e, tree, nil, Pagination{Page: 1, Limit: 10}); !errors.Is(err, ErrQueryPlan) {
		t.Errorf("error = %v, want ErrQueryPlan", err)
	}
}

func TestRender_Deterministic(t *testing.T) {
	a := render(t, "acme 42 west", []string{"name", "id", "contact_name"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	b := render(t, "acme 42 west", []string{"name", "id", "contact_name"}, mode.Partial, Pagination{Page: 1, Limit: 10})
	if a.Predicate != b.Predicate {
		t.Errorf("predicates differ:\n%s\n%s", a.Predicate, b.Predicate)
	}
	if diff := cmp.Diff(a.Args, b.Args); diff != "" {
		t.Errorf("args differ:\n%s", diff)
	}
}

func TestRender_FilterLeaf(t *testing.T) {
	e := testEntity()
	status := field.MustNew("status", "c", "c.status")
	tree := predicate.And(
		predicate.Plan(token.Tokenize("ann"), e.DefaultFields(), mode.Partial),
		predicate.NewLeaf(predicate.EqualTo(status, "active")),
	)
	p, err := Render(e, tree, e.Ordering(request.Sort{}), Pagination{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "((c.name ILIKE ? OR c.owner_name ILIKE ?) AND c.status = ?)"
	if p.Predicate != want {
		t.Errorf("Predicate = %q, want %q", p.Predicate, want)
	}
}
