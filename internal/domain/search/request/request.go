package request

import (
	"strings"
	"unicode/utf8"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength bounds the raw query; longer input is truncated.
	MaxQueryLength = 512
	DefaultPage    = 1
	DefaultLimit   = 10
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort is a caller-requested ordering on a logical field name.
type Sort struct {
	field     string
	direction Direction
}

// NewSort builds a sort. Unknown directions become ascending.
func NewSort(field, direction string) Sort {
	d := Direction(strings.ToUpper(strings.TrimSpace(direction)))
	if d != Desc {
		d = Asc
	}
	return Sort{field: strings.TrimSpace(field), direction: d}
}

// Field returns the requested sort field.
func (s Sort) Field() string { return s.field }

// Direction returns the sort direction.
func (s Sort) Direction() Direction { return s.direction }

// IsZero reports whether no sort was requested.
func (s Sort) IsZero() bool { return s.field == "" }

// Request is a validated search call.
type Request struct {
	query   string
	page    int
	limit   int
	fields  []string
	mode    string
	sort    Sort
	filters filter.Expression
}

// Option sets an optional request parameter.
type Option func(*Request)

// WithFields overrides the default searchable fields. Accepts a
// comma-separated list; blanks are dropped.
func WithFields(csv string) Option {
	return func(r *Request) {
		for _, f := range strings.Split(csv, ",") {
			if f = strings.TrimSpace(f); f != "" {
				r.fields = append(r.fields, f)
			}
		}
	}
}

// WithMode sets the raw match mode; it is resolved against the entity default later.
func WithMode(m string) Option {
	return func(r *Request) { r.mode = m }
}

// WithSort sets the requested ordering.
func WithSort(s Sort) Option {
	return func(r *Request) { r.sort = s }
}

// WithFilters sets structured equality filters.
func WithFilters(e filter.Expression) Option {
	return func(r *Request) { r.filters = e }
}

// New validates pagination and builds a request. Only pagination errors are
// returned; everything else degrades to defaults.
func New(query string, page, limit int, opts ...Option) (Request, error) {
	if page < 1 {
		return Request{}, &domain.InvalidPaginationError{Param: "page", Value: page}
	}
	if limit < 1 {
		return Request{}, &domain.InvalidPaginationError{Param: "limit", Value: limit}
	}

	r := Request{query: truncate(query, MaxQueryLength), page: page, limit: limit}
	for _, opt := range opts {
		opt(&r)
	}
	return r, nil
}

// CheckLimit rejects a limit above the entity maximum.
func (r Request) CheckLimit(maxLimit int) error {
	if maxLimit > 0 && r.limit > maxLimit {
		return &domain.InvalidPaginationError{Param: "limit", Value: r.limit, Max: maxLimit}
	}
	return nil
}

// Query returns the raw query text.
func (r Request) Query() string { return r.query }

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// Limit returns the page size.
func (r Request) Limit() int { return r.limit }

// Fields returns the requested field names; empty means entity defaults.
func (r Request) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Mode returns the raw requested match mode.
func (r Request) Mode() string { return r.mode }

// Sort returns the requested ordering.
func (r Request) Sort() Sort { return r.sort }

// Filters returns the structured filters.
func (r Request) Filters() filter.Expression { return r.filters }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	// Drop only a rune the cut split; other invalid bytes are the tokenizer's.
	for i := len(s) - 1; i >= 0 && i >= len(s)-utf8.UTFMax; i-- {
		if utf8.RuneStart(s[i]) {
			if !utf8.FullRuneInString(s[i:]) {
				s = s[:i]
			}
			break
		}
	}
	return s
}
