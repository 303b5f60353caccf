// Package filter holds structured equality filters applied next to the
// free-text match.
package filter

import (
	"fmt"
	"sort"
)

// MaxConditions is the maximum number of filter conditions per request.
const MaxConditions = 16

// Expression is a conjunction of equality conditions.
type Expression struct {
	conditions []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(conditions ...Condition) (Expression, error) {
	if len(conditions) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	seen := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		if seen[c.key] {
			return Expression{}, fmt.Errorf("duplicate filter key %q", c.key)
		}
		seen[c.key] = true
	}
	return Expression{conditions: conditions}, nil
}

// FromMap builds an expression from key/value pairs in key order. Pairs with
// an empty value are skipped.
func FromMap(m map[string]string) (Expression, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]Condition, 0, len(keys))
	for _, k := range keys {
		if m[k] == "" {
			continue
		}
		c, err := NewMatch(k, m[k])
		if err != nil {
			return Expression{}, err
		}
		conditions = append(conditions, c)
	}
	return NewExpression(conditions...)
}

// Conditions returns the conditions in declaration order.
func (e Expression) Conditions() []Condition {
	out := make([]Condition, len(e.conditions))
	copy(out, e.conditions)
	return out
}

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Condition is a single exact-match clause.
type Condition struct {
	key   string
	value string
}

// NewMatch creates an exact match condition.
func NewMatch(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, value: value}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Value returns the exact match value.
func (c Condition) Value() string { return c.value }
