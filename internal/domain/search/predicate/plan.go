package predicate

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/token"
)

// Plan combines the query tokens with the fields according to m.
//
// Exact and Phrase match the whole normalized query against any field.
// Partial with one word does the same for that word; with several words
// every word must match some field, not necessarily the same one.
// Field and word order is preserved so identical input renders identically.
func Plan(q token.Query, fields []field.Field, m mode.Mode) Node {
	if q.IsEmpty() {
		return Or()
	}
	if m.WholeQuery() {
		return anyField(q.Whole(), fields)
	}

	words := q.Words()
	if len(words) == 1 {
		return anyField(words[0], fields)
	}
	groups := make([]Node, 0, len(words))
	for _, w := range words {
		groups = append(groups, anyField(w, fields))
	}
	return And(groups...)
}

// anyField ORs every leaf each field contributes for t. A token no field
// accepts yields an empty OR, which matches nothing.
func anyField(t token.Token, fields []field.Field) Node {
	var leaves []Leaf
	for _, f := range fields {
		leaves = append(leaves, Match(f, t)...)
	}
	return OrLeaves(leaves...)
}
