package field

import (
	"errors"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	f, err := New("customer_name", "c", "c.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Has(Textual) || f.Has(Identifier) || f.Has(DateLike) || f.Has(AmountLike) {
		t.Errorf("unexpected capabilities %b", f.caps)
	}
	if !f.Folds() {
		t.Error("fields fold by default")
	}
	if f.Compact() {
		t.Error("fields are not compact by default")
	}
	if f.TextExpr() != "c.name" {
		t.Errorf("TextExpr() = %q", f.TextExpr())
	}
}

func TestNew_Options(t *testing.T) {
	id := MustNew("id", "o", "o.id", WithIdentifier(), WithTextExpr("CAST(o.id AS TEXT)"), WithoutFolding())
	if !id.Has(Textual) || !id.Has(Identifier) {
		t.Error("identifier keeps substring matching")
	}
	if id.TextExpr() != "CAST(o.id AS TEXT)" || id.Expr() != "o.id" {
		t.Errorf("expr=%q textExpr=%q", id.Expr(), id.TextExpr())
	}
	if id.Folds() {
		t.Error("WithoutFolding ignored")
	}

	key := MustNew("customer_id", "i", "i.customer_id", WithIdentifierOnly())
	if key.Has(Textual) || !key.Has(Identifier) {
		t.Error("identifier-only field must not match substrings")
	}

	d := MustNew("order_date", "o", "o.order_date", WithDate())
	if d.Has(Textual) || !d.Has(DateLike) {
		t.Error("date field must only match dates")
	}

	a := MustNew("total_amount", "o", "o.total_amount", WithAmount())
	if a.Has(Textual) || !a.Has(AmountLike) {
		t.Error("amount field must only match amounts")
	}

	c := MustNew("quote_number", "q", "q.quote_number", WithCompact())
	if !c.Compact() {
		t.Error("WithCompact ignored")
	}
}

func TestNew_Invalid(t *testing.T) {
	cases := [][3]string{
		{"", "o", "o.id"},
		{"id", "", "o.id"},
		{"id", "o", ""},
	}
	for _, c := range cases {
		if _, err := New(c[0], c[1], c[2]); !errors.Is(err, ErrInvalidField) {
			t.Errorf("New(%q, %q, %q) error = %v, want ErrInvalidField", c[0], c[1], c[2], err)
		}
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustNew("", "", "")
}
