package predicate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/token"
)

// AmountTolerance is the maximum difference for an Approx match.
var AmountTolerance = decimal.RequireFromString("0.01")

// Lookup returns the value of a field by logical name.
type Lookup func(name string) (any, bool)

// Eval evaluates the tree against a single record.
func (n Node) Eval(get Lookup) bool {
	switch n.op {
	case OpLeaf:
		return n.leaf.Eval(get)
	case OpAnd:
		for _, c := range n.children {
			if !c.Eval(get) {
				return false
			}
		}
		return true
	default:
		for _, c := range n.children {
			if c.Eval(get) {
				return true
			}
		}
		return false
	}
}

// Eval evaluates the leaf against a single record. Missing or nil values
// never match.
func (l Leaf) Eval(get Lookup) bool {
	v, ok := get(l.field.Name())
	if !ok || v == nil {
		return false
	}

	switch l.cmp {
	case Contains:
		return strings.Contains(l.fold(stringify(v)), l.value.(string))
	case ContainsCompact:
		return strings.Contains(compact(l.fold(stringify(v))), l.value.(string))
	case Equals:
		return equals(v, l.value)
	case OnDay:
		return onDay(v, l.value.(time.Time))
	case Approx:
		d, ok := toDecimal(v)
		return ok && d.Sub(l.value.(decimal.Decimal)).Abs().LessThan(AmountTolerance)
	default:
		return false
	}
}

func (l Leaf) fold(s string) string {
	if l.field.Folds() {
		return strings.ToLower(s)
	}
	return s
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(token.DateLayout)
	default:
		return fmt.Sprint(x)
	}
}

func equals(v, want any) bool {
	switch w := want.(type) {
	case int64:
		n, ok := toInt(v)
		return ok && n == w
	case string:
		return stringify(v) == w
	default:
		return false
	}
}

func onDay(v any, day time.Time) bool {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case string:
		if len(x) < len(token.DateLayout) {
			return false
		}
		parsed, err := time.Parse(token.DateLayout, x[:len(token.DateLayout)])
		if err != nil {
			return false
		}
		t = parsed
	default:
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}
