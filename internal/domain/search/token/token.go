// Package token normalizes raw search input and classifies it into typed tokens.
package token

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the class a token was recognized as.
type Kind string

// Token kinds.
const (
	Text    Kind = "text"
	Integer Kind = "integer"
	Date    Kind = "date"
	Amount  Kind = "amount"
)

// DateLayout is the canonical form every recognized date is normalized to.
const DateLayout = "2006-01-02"

// Token is a classified unit of a normalized query.
type Token struct {
	raw     string
	kind    Kind
	integer int64
	date    time.Time
	amount  decimal.Decimal
}

// Raw returns the normalized substring the token was built from.
func (t Token) Raw() string { return t.raw }

// Kind returns the token class.
func (t Token) Kind() Kind { return t.kind }

// Int returns the parsed identifier value of an Integer token.
func (t Token) Int() (int64, bool) {
	if t.kind != Integer {
		return 0, false
	}
	return t.integer, true
}

// Date returns the start of the day of a Date token (UTC).
func (t Token) Date() (time.Time, bool) {
	if t.kind != Date {
		return time.Time{}, false
	}
	return t.date, true
}

// Amount returns the numeric value of an Amount token. Integer tokens also
// qualify: "125" is usable against amount-like fields.
func (t Token) Amount() (decimal.Decimal, bool) {
	switch t.kind {
	case Amount:
		return t.amount, true
	case Integer:
		return decimal.NewFromInt(t.integer), true
	default:
		return decimal.Decimal{}, false
	}
}

// Pattern returns the text used for substring leaves. Dates use the
// canonical YYYY-MM-DD form.
func (t Token) Pattern() string {
	if t.kind == Date {
		return t.date.Format(DateLayout)
	}
	return t.raw
}

// Query is a normalized search input with its whole-query and per-word tokens.
type Query struct {
	original   string
	normalized string
	whole      Token
	words      []Token
}

// Original returns the input exactly as received.
func (q Query) Original() string { return q.original }

// Normalized returns the decoded, lowercased, whitespace-collapsed text.
func (q Query) Normalized() string { return q.normalized }

// Whole returns the token for the entire normalized text.
func (q Query) Whole() Token { return q.whole }

// Words returns one token per whitespace-separated word, in input order.
func (q Query) Words() []Token {
	out := make([]Token, len(q.words))
	copy(out, q.words)
	return out
}

// IsEmpty reports whether nothing searchable remains after normalization.
func (q Query) IsEmpty() bool { return len(q.words) == 0 }
