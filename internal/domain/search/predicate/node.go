// Package predicate builds the boolean match tree for a tokenized query.
package predicate

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

// Comparison is the operation a leaf applies to its field.
type Comparison string

// Leaf comparisons.
const (
	// Contains is a substring match on the field's text expression.
	Contains Comparison = "contains"
	// ContainsCompact is Contains with spaces removed on both sides.
	ContainsCompact Comparison = "contains_compact"
	// Equals is exact equality.
	Equals Comparison = "equals"
	// OnDay matches any instant within the token's calendar day.
	OnDay Comparison = "on_day"
	// Approx matches numbers within AmountTolerance.
	Approx Comparison = "approx"
)

// Op is the kind of a tree node.
type Op string

// Node kinds.
const (
	OpLeaf Op = "leaf"
	OpAnd  Op = "and"
	OpOr   Op = "or"
)

// Leaf is a single field comparison. The value type depends on the
// comparison: string for Contains and ContainsCompact, int64 or string for
// Equals, time.Time for OnDay, decimal.Decimal for Approx.
type Leaf struct {
	field field.Field
	cmp   Comparison
	value any
}

// Field returns the compared field.
func (l Leaf) Field() field.Field { return l.field }

// Comparison returns the leaf operation.
func (l Leaf) Comparison() Comparison { return l.cmp }

// Value returns the literal the field is compared with.
func (l Leaf) Value() any { return l.value }

// Node is an immutable predicate tree: either a leaf or an AND/OR group.
type Node struct {
	op       Op
	leaf     Leaf
	children []Node
}

// NewLeaf wraps a leaf as a tree node.
func NewLeaf(l Leaf) Node { return Node{op: OpLeaf, leaf: l} }

// And groups children that must all match. An empty AND matches everything.
func And(children ...Node) Node { return group(OpAnd, children) }

// Or groups children of which at least one must match. An empty OR matches
// nothing.
func Or(children ...Node) Node { return group(OpOr, children) }

// OrLeaves groups leaves under a single OR.
func OrLeaves(leaves ...Leaf) Node {
	children := make([]Node, 0, len(leaves))
	for _, l := range leaves {
		children = append(children, NewLeaf(l))
	}
	return Node{op: OpOr, children: children}
}

func group(op Op, children []Node) Node {
	cp := make([]Node, len(children))
	copy(cp, children)
	return Node{op: op, children: cp}
}

// Op returns the node kind.
func (n Node) Op() Op { return n.op }

// Leaf returns the leaf of a leaf node.
func (n Node) Leaf() (Leaf, bool) { return n.leaf, n.op == OpLeaf }

// Children returns a copy of the group's children.
func (n Node) Children() []Node {
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// Leaves returns every leaf in depth-first order.
func (n Node) Leaves() []Leaf {
	var out []Leaf
	n.walk(func(l Leaf) { out = append(out, l) })
	return out
}

// Aliases returns the distinct table aliases the tree reads, in first-seen order.
func (n Node) Aliases() []string {
	seen := make(map[string]bool)
	var out []string
	n.walk(func(l Leaf) {
		a := l.field.Alias()
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	})
	return out
}

func (n Node) walk(fn func(Leaf)) {
	if n.op == OpLeaf {
		fn(n.leaf)
		return
	}
	for _, c := range n.children {
		c.walk(fn)
	}
}
