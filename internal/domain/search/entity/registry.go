package entity

import (
	"fmt"
	"sort"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain"
)

// Registry resolves entities by name.
type Registry struct {
	entities map[string]*Entity
}

// NewRegistry indexes entities by name. Duplicate names are an error.
func NewRegistry(entities ...*Entity) (*Registry, error) {
	r := &Registry{entities: make(map[string]*Entity, len(entities))}
	for _, e := range entities {
		if _, dup := r.entities[e.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate entity %q", ErrInvalidEntity, e.Name())
		}
		r.entities[e.Name()] = e
	}
	return r, nil
}

// Get returns the entity or domain.ErrUnknownEntity.
func (r *Registry) Get(name string) (*Entity, error) {
	e, ok := r.entities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEntity, name)
	}
	return e, nil
}

// Names returns the registered entity names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.entities))
	for n := range r.entities {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
