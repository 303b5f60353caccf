package predicate

import (
	"strings"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/token"
)

// Match builds the leaves field f contributes for token t. A nil result
// means the field cannot accept the token's kind.
func Match(f field.Field, t token.Token) []Leaf {
	var leaves []Leaf

	switch t.Kind() {
	case token.Text, token.Integer, token.Amount:
		if f.Has(field.Textual) {
			leaves = append(leaves, Leaf{field: f, cmp: Contains, value: t.Pattern()})
			if f.Compact() {
				leaves = append(leaves, Leaf{field: f, cmp: ContainsCompact, value: compact(t.Pattern())})
			}
		}
	case token.Date:
		if d, ok := t.Date(); ok && f.Has(field.DateLike) {
			leaves = append(leaves, Leaf{field: f, cmp: OnDay, value: d})
		}
	}

	if n, ok := t.Int(); ok && f.Has(field.Identifier) {
		leaves = append(leaves, Leaf{field: f, cmp: Equals, value: n})
	}
	if a, ok := t.Amount(); ok && f.Has(field.AmountLike) {
		leaves = append(leaves, Leaf{field: f, cmp: Approx, value: a})
	}
	return leaves
}

// EqualTo builds an exact-equality leaf for a structured filter value.
func EqualTo(f field.Field, value string) Leaf {
	return Leaf{field: f, cmp: Equals, value: value}
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
