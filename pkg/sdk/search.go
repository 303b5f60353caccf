package sdk

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// MatchMode selects how the query is matched.
type MatchMode string

// Match modes.
const (
	MatchPartial MatchMode = "partial"
	MatchExact   MatchMode = "exact"
	MatchPhrase  MatchMode = "phrase"
)

// SearchOption configures a single search call.
type SearchOption func(*searchParams)

type searchParams struct {
	page    int
	limit   int
	fields  []string
	match   MatchMode
	sort    string
	dir     string
	filters map[string]string
}

// Page selects the 1-based page.
func Page(n int) SearchOption {
	return func(p *searchParams) { p.page = n }
}

// Limit sets the page size.
func Limit(n int) SearchOption {
	return func(p *searchParams) { p.limit = n }
}

// Fields restricts matching to the named fields.
func Fields(names ...string) SearchOption {
	return func(p *searchParams) { p.fields = append(p.fields, names...) }
}

// Match sets the match mode.
func Match(m MatchMode) SearchOption {
	return func(p *searchParams) { p.match = m }
}

// SortBy orders results by a sortable column. dir is ASC or DESC.
func SortBy(field, dir string) SearchOption {
	return func(p *searchParams) {
		p.sort = field
		p.dir = strings.ToUpper(dir)
	}
}

// Filter adds an equality filter. Repeated keys overwrite.
func Filter(key, value string) SearchOption {
	return func(p *searchParams) {
		if p.filters == nil {
			p.filters = make(map[string]string)
		}
		p.filters[key] = value
	}
}

func (p *searchParams) values(q string) (url.Values, error) {
	v := url.Values{}
	v.Set("q", q)
	if p.page > 0 {
		v.Set("page", strconv.Itoa(p.page))
	}
	if p.limit > 0 {
		v.Set("limit", strconv.Itoa(p.limit))
	}
	if len(p.fields) > 0 {
		v.Set("fields", strings.Join(p.fields, ","))
	}
	if p.match != "" {
		v.Set("match", string(p.match))
	}
	if p.sort != "" {
		if p.dir == "" {
			v.Set("sort", p.sort)
		} else {
			b, err := json.Marshal(map[string]string{p.sort: p.dir})
			if err != nil {
				return nil, err
			}
			v.Set("sort", string(b))
		}
	}
	if len(p.filters) > 0 {
		b, err := json.Marshal(p.filters)
		if err != nil {
			return nil, err
		}
		v.Set("filter", string(b))
	}
	return v, nil
}
