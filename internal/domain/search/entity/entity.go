// Package entity declares how each searchable entity maps onto tables:
// its fields, joins, default ordering and limits.
package entity

import (
	"errors"
	"fmt"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
)

// ErrInvalidEntity is returned for inconsistent entity declarations.
var ErrInvalidEntity = errors.New("invalid entity")

// DefaultMaxLimit applies when a config leaves MaxLimit unset.
const DefaultMaxLimit = 100

// Column is a selected output column.
type Column struct {
	Name  string
	Alias string
	Expr  string
}

// Join attaches a related table. Requires lists aliases that must be joined first.
type Join struct {
	Alias    string
	Clause   string
	Requires []string
}

// Order is one ORDER BY term.
type Order struct {
	Field string
	Alias string
	Expr  string
	Desc  bool
}

// Sortable is a whitelisted caller-selectable ordering column.
type Sortable struct {
	Alias string
	Expr  string
}

// Config is the static declaration of an entity.
type Config struct {
	Name         string
	Table        string
	Alias        string
	Key          string
	Columns      []Column
	Fields       []field.Field
	Defaults     []string
	Joins        []Join
	DefaultOrder []Order
	Sortable     map[string]Sortable
	Filterable   []field.Field
	DefaultMode  mode.Mode
	MaxLimit     int
}

// Entity is a validated, immutable entity declaration.
type Entity struct {
	cfg      Config
	fields   map[string]field.Field
	filters  map[string]field.Field
	joins    map[string]Join
	defaults []field.Field
}

// New validates cfg.
func New(cfg Config) (*Entity, error) {
	if cfg.Name == "" || cfg.Table == "" || cfg.Alias == "" || cfg.Key == "" {
		return nil, fmt.Errorf("%w: name, table, alias and key are required", ErrInvalidEntity)
	}
	if len(cfg.DefaultOrder) == 0 {
		return nil, fmt.Errorf("%w: %s: default order is required", ErrInvalidEntity, cfg.Name)
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = mode.Partial
	}
	if !cfg.DefaultMode.IsValid() {
		return nil, fmt.Errorf("%w: %s: invalid default mode %q", ErrInvalidEntity, cfg.Name, cfg.DefaultMode)
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultMaxLimit
	}

	e := &Entity{
		cfg:     cfg,
		fields:  make(map[string]field.Field, len(cfg.Fields)),
		filters: make(map[string]field.Field, len(cfg.Filterable)),
		joins:   make(map[string]Join, len(cfg.Joins)),
	}
	for _, j := range cfg.Joins {
		if _, dup := e.joins[j.Alias]; dup || j.Alias == cfg.Alias {
			return nil, fmt.Errorf("%w: %s: duplicate join alias %q", ErrInvalidEntity, cfg.Name, j.Alias)
		}
		e.joins[j.Alias] = j
	}
	for _, j := range cfg.Joins {
		for _, r := range j.Requires {
			if err := e.checkAlias(r); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range cfg.Fields {
		if _, dup := e.fields[f.Name()]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidEntity, cfg.Name, f.Name())
		}
		if err := e.checkAlias(f.Alias()); err != nil {
			return nil, err
		}
		e.fields[f.Name()] = f
	}
	for _, f := range cfg.Filterable {
		if err := e.checkAlias(f.Alias()); err != nil {
			return nil, err
		}
		e.filters[f.Name()] = f
	}
	for _, name := range cfg.Defaults {
		f, ok := e.fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s: default field %q is not declared", ErrInvalidEntity, cfg.Name, name)
		}
		e.defaults = append(e.defaults, f)
	}
	if len(e.defaults) == 0 {
		return nil, fmt.Errorf("%w: %s: at least one default field is required", ErrInvalidEntity, cfg.Name)
	}
	for _, c := range cfg.Columns {
		if err := e.checkAlias(c.Alias); err != nil {
			return nil, err
		}
	}
	for _, o := range cfg.DefaultOrder {
		if err := e.checkAlias(o.Alias); err != nil {
			return nil, err
		}
	}
	for _, s := range cfg.Sortable {
		if err := e.checkAlias(s.Alias); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MustNew is New for static catalogs; it panics on a bad declaration.
func MustNew(cfg Config) *Entity {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Entity) checkAlias(alias string) error {
	if alias == e.cfg.Alias {
		return nil
	}
	if _, ok := e.joins[alias]; !ok {
		return fmt.Errorf("%w: %s: unknown table alias %q", ErrInvalidEntity, e.cfg.Name, alias)
	}
	return nil
}

// Name returns the entity name used in routes and metrics.
func (e *Entity) Name() string { return e.cfg.Name }

// Table returns the base table.
func (e *Entity) Table() string { return e.cfg.Table }

// Alias returns the base table alias.
func (e *Entity) Alias() string { return e.cfg.Alias }

// Key returns the base table primary key column.
func (e *Entity) Key() string { return e.cfg.Key }

// KeyExpr returns the qualified primary key expression.
func (e *Entity) KeyExpr() string { return e.cfg.Alias + "." + e.cfg.Key }

// Columns returns the selected output columns.
func (e *Entity) Columns() []Column { return e.cfg.Columns }

// MaxLimit returns the largest accepted page size.
func (e *Entity) MaxLimit() int { return e.cfg.MaxLimit }

// DefaultMode returns the mode used when the caller gives none or an unknown one.
func (e *Entity) DefaultMode() mode.Mode { return e.cfg.DefaultMode }

// DefaultFields returns the fields searched when the caller names none.
func (e *Entity) DefaultFields() []field.Field {
	out := make([]field.Field, len(e.defaults))
	copy(out, e.defaults)
	return out
}

// ResolveFields maps requested names to declared fields in request order.
// Unknown and repeated names are dropped; if nothing valid remains the
// defaults apply.
func (e *Entity) ResolveFields(names []string) []field.Field {
	seen := make(map[string]bool, len(names))
	var out []field.Field
	for _, n := range names {
		f, ok := e.fields[n]
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return e.DefaultFields()
	}
	return out
}

// Filter returns the field a structured filter key applies to.
func (e *Entity) Filter(key string) (field.Field, bool) {
	f, ok := e.filters[key]
	return f, ok
}

// Ordering returns the ORDER BY terms for a requested sort. Fields outside
// the whitelist fall back to the default order. The primary key is always
// the final tie-break.
func (e *Entity) Ordering(s request.Sort) []Order {
	var out []Order
	if sc, ok := e.cfg.Sortable[s.Field()]; ok && !s.IsZero() {
		out = append(out, Order{Field: s.Field(), Alias: sc.Alias, Expr: sc.Expr, Desc: s.Direction() == request.Desc})
	} else {
		out = append(out, e.cfg.DefaultOrder...)
	}

	for _, o := range out {
		if o.Expr == e.KeyExpr() {
			return out
		}
	}
	return append(out, Order{Field: e.cfg.Key, Alias: e.cfg.Alias, Expr: e.KeyExpr()})
}

// JoinsFor returns the joins needed to read the given aliases, including
// their prerequisites, in declaration order.
func (e *Entity) JoinsFor(aliases ...string) []Join {
	need := make(map[string]bool)
	var visit func(a string)
	visit = func(a string) {
		j, ok := e.joins[a]
		if !ok || need[a] {
			return
		}
		need[a] = true
		for _, r := range j.Requires {
			visit(r)
		}
	}
	for _, a := range aliases {
		visit(a)
	}

	out := make([]Join, 0, len(need))
	for _, j := range e.cfg.Joins {
		if need[j.Alias] {
			out = append(out, j)
		}
	}
	return out
}

// ColumnAliases returns the aliases the selected columns read.
func (e *Entity) ColumnAliases() []string {
	var out []string
	for _, c := range e.cfg.Columns {
		out = append(out, c.Alias)
	}
	return out
}
