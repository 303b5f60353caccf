package entity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
)

func testConfig() Config {
	return Config{
		Name:  "orders",
		Table: "orders",
		Alias: "o",
		Key:   "id",
		Columns: []Column{
			{Name: "id", Alias: "o", Expr: "o.id"},
			{Name: "customer_name", Alias: "c", Expr: "c.name"},
		},
		Fields: []field.Field{
			field.MustNew("order_number", "o", "o.order_number"),
			field.MustNew("customer_name", "c", "c.name"),
			field.MustNew("contact_name", "ct", "ct.first_name"),
		},
		Defaults: []string{"order_number", "customer_name"},
		Joins: []Join{
			{Alias: "c", Clause: "LEFT JOIN customers c ON c.id = o.customer_id"},
			{Alias: "ct", Clause: "LEFT JOIN contacts ct ON ct.customer_id = c.id", Requires: []string{"c"}},
		},
		DefaultOrder: []Order{{Field: "order_date", Alias: "o", Expr: "o.order_date", Desc: true}},
		Sortable: map[string]Sortable{
			"customer_name": {Alias: "c", Expr: "c.name"},
			"id":            {Alias: "o", Expr: "o.id"},
		},
		Filterable: []field.Field{field.MustNew("status", "o", "o.status")},
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.DefaultMode() != mode.Partial {
		t.Errorf("DefaultMode() = %q", e.DefaultMode())
	}
	if e.MaxLimit() != DefaultMaxLimit {
		t.Errorf("MaxLimit() = %d", e.MaxLimit())
	}
	if e.KeyExpr() != "o.id" {
		t.Errorf("KeyExpr() = %q", e.KeyExpr())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing key", func(c *Config) { c.Key = "" }},
		{"no default order", func(c *Config) { c.DefaultOrder = nil }},
		{"bad mode", func(c *Config) { c.DefaultMode = "fuzzy" }},
		{"unknown default", func(c *Config) { c.Defaults = []string{"nope"} }},
		{"no defaults", func(c *Config) { c.Defaults = nil }},
		{"unknown alias", func(c *Config) { c.Fields = append(c.Fields, field.MustNew("x", "zz", "zz.x")) }},
		{"duplicate field", func(c *Config) { c.Fields = append(c.Fields, c.Fields[0]) }},
		{"duplicate join", func(c *Config) { c.Joins = append(c.Joins, c.Joins[0]) }},
		{"unknown requirement", func(c *Config) { c.Joins[1].Requires = []string{"zz"} }},
		{"unknown sortable alias", func(c *Config) { c.Sortable["x"] = Sortable{Alias: "zz", Expr: "zz.x"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrInvalidEntity) {
				t.Errorf("error = %v, want ErrInvalidEntity", err)
			}
		})
	}
}

func names(fs []field.Field) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name())
	}
	return out
}

func TestResolveFields(t *testing.T) {
	e := MustNew(testConfig())
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, []string{"order_number", "customer_name"}},
		{[]string{"contact_name"}, []string{"contact_name"}},
		{[]string{"bogus", "contact_name", "contact_name", "order_number"}, []string{"contact_name", "order_number"}},
		{[]string{"bogus"}, []string{"order_number", "customer_name"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, names(e.ResolveFields(tt.in))); diff != "" {
			t.Errorf("ResolveFields(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestOrdering(t *testing.T) {
	e := MustNew(testConfig())

	got := e.Ordering(request.Sort{})
	want := []Order{
		{Field: "order_date", Alias: "o", Expr: "o.order_date", Desc: true},
		{Field: "id", Alias: "o", Expr: "o.id"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("default ordering mismatch (-want +got):\n%s", diff)
	}

	got = e.Ordering(request.NewSort("customer_name", "desc"))
	want = []Order{
		{Field: "customer_name", Alias: "c", Expr: "c.name", Desc: true},
		{Field: "id", Alias: "o", Expr: "o.id"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("whitelisted ordering mismatch (-want +got):\n%s", diff)
	}

	got = e.Ordering(request.NewSort("id", "asc"))
	if len(got) != 1 {
		t.Errorf("key sort should not get a second tie-break: %+v", got)
	}

	got = e.Ordering(request.NewSort("password", "asc"))
	if got[0].Field != "order_date" {
		t.Errorf("unknown sort must fall back to default, got %+v", got)
	}
}

func TestJoinsFor(t *testing.T) {
	e := MustNew(testConfig())

	if j := e.JoinsFor("o"); len(j) != 0 {
		t.Errorf("base alias needs no joins: %+v", j)
	}
	j := e.JoinsFor("ct")
	if len(j) != 2 || j[0].Alias != "c" || j[1].Alias != "ct" {
		t.Errorf("JoinsFor(ct) = %+v, want c then ct", j)
	}
	j = e.JoinsFor("c", "c")
	if len(j) != 1 {
		t.Errorf("JoinsFor(c, c) = %+v", j)
	}
}

func TestFilter(t *testing.T) {
	e := MustNew(testConfig())
	if f, ok := e.Filter("status"); !ok || f.Expr() != "o.status" {
		t.Errorf("Filter(status) = %+v, %v", f, ok)
	}
	if _, ok := e.Filter("password"); ok {
		t.Error("non-whitelisted filter accepted")
	}
}

func TestRegistry(t *testing.T) {
	e := MustNew(testConfig())
	r, err := NewRegistry(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, err := r.Get("orders"); err != nil || got != e {
		t.Errorf("Get(orders) = %v, %v", got, err)
	}
	if _, err := r.Get("widgets"); !errors.Is(err, domain.ErrUnknownEntity) {
		t.Errorf("error = %v, want ErrUnknownEntity", err)
	}
	if _, err := NewRegistry(e, e); !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("duplicate error = %v", err)
	}
	if diff := cmp.Diff([]string{"orders"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch:\n%s", diff)
	}
}
