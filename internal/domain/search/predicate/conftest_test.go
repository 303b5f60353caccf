package predicate

import (
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

var (
	nameField  = field.MustNew("name", "c", "c.name")
	ownerField = field.MustNew("owner_name", "c", "c.owner_name")
	idField    = field.MustNew("id", "o", "o.id",
		field.WithIdentifier(), field.WithTextExpr("CAST(o.id AS TEXT)"), field.WithoutFolding())
	dateField   = field.MustNew("order_date", "o", "o.order_date", field.WithDate())
	amountField = field.MustNew("total_amount", "o", "o.total_amount", field.WithAmount())
	quoteField  = field.MustNew("quote_number", "q", "q.quote_number", field.WithCompact())
	contactName = field.MustNew("contact_name", "ct", "ct.first_name || ' ' || ct.last_name")
)

var treeOpts = cmp.Options{
	cmp.AllowUnexported(Node{}, Leaf{}, field.Field{}),
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
}

func record(kv map[string]any) Lookup {
	return func(name string) (any, bool) {
		v, ok := kv[name]
		return v, ok
	}
}

func comparisons(leaves []Leaf) []Comparison {
	out := make([]Comparison, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, l.Comparison())
	}
	return out
}
