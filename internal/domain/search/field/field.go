// Package field declares the searchable columns of an entity.
package field

import (
	"errors"
	"fmt"
)

// Capability is a bit set of the token kinds a field can be compared with.
type Capability uint8

// Field capabilities.
const (
	// Textual fields accept substring matching.
	Textual Capability = 1 << iota
	// Identifier fields accept exact equality on Integer tokens.
	Identifier
	// DateLike fields accept whole-day range matching on Date tokens.
	DateLike
	// AmountLike fields accept tolerance matching on numeric tokens.
	AmountLike
)

// ErrInvalidField is returned for malformed field declarations.
var ErrInvalidField = errors.New("invalid field")

// Field is an immutable searchable column or expression.
type Field struct {
	name     string
	alias    string
	expr     string
	textExpr string
	caps     Capability
	fold     bool
	compact  bool
}

// Option customizes a field declaration.
type Option func(*Field)

// WithIdentifier adds exact-equality matching for Integer tokens alongside
// substring matching.
func WithIdentifier() Option {
	return func(f *Field) { f.caps |= Identifier }
}

// WithIdentifierOnly makes the field match Integer tokens by equality only.
func WithIdentifierOnly() Option {
	return func(f *Field) { f.caps = Identifier }
}

// WithDate makes the field match Date tokens by calendar day only.
func WithDate() Option {
	return func(f *Field) { f.caps = DateLike }
}

// WithAmount makes the field match numeric tokens within a 0.01 tolerance only.
func WithAmount() Option {
	return func(f *Field) { f.caps = AmountLike }
}

// WithTextExpr sets the expression used for substring matching, e.g. a cast
// of a numeric key to text.
func WithTextExpr(expr string) Option {
	return func(f *Field) { f.textExpr = expr }
}

// WithoutFolding compares the column as stored, without lowercasing it.
func WithoutFolding() Option {
	return func(f *Field) { f.fold = false }
}

// WithCompact also matches the value with all spaces removed on both sides.
func WithCompact() Option {
	return func(f *Field) { f.compact = true }
}

// New declares a field. alias is the table alias the expression reads from.
func New(name, alias, expr string, opts ...Option) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("%w: name is required", ErrInvalidField)
	}
	if alias == "" {
		return Field{}, fmt.Errorf("%w: %s: table alias is required", ErrInvalidField, name)
	}
	if expr == "" {
		return Field{}, fmt.Errorf("%w: %s: expression is required", ErrInvalidField, name)
	}
	f := Field{name: name, alias: alias, expr: expr, caps: Textual, fold: true}
	for _, opt := range opts {
		opt(&f)
	}
	if f.caps == 0 {
		return Field{}, fmt.Errorf("%w: %s: no capabilities", ErrInvalidField, name)
	}
	return f, nil
}

// MustNew is New for static registries; it panics on a bad declaration.
func MustNew(name, alias, expr string, opts ...Option) Field {
	f, err := New(name, alias, expr, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the logical field name used by callers and records.
func (f Field) Name() string { return f.name }

// Alias returns the table alias the expression depends on.
func (f Field) Alias() string { return f.alias }

// Expr returns the column expression.
func (f Field) Expr() string { return f.expr }

// TextExpr returns the expression used for substring matching.
func (f Field) TextExpr() string {
	if f.textExpr != "" {
		return f.textExpr
	}
	return f.expr
}

// Has reports whether the field supports capability c.
func (f Field) Has(c Capability) bool { return f.caps&c != 0 }

// Folds reports whether the field is lowercased before comparison.
func (f Field) Folds() bool { return f.fold }

// Compact reports whether the field also matches with spaces removed.
func (f Field) Compact() bool { return f.compact }
