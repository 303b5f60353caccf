// Package record holds the row shape returned by record sources.
package record

// Record is a single result row keyed by column name.
type Record map[string]any

// Get returns the value of a column.
func (r Record) Get(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Clone returns a shallow copy that can be enriched without touching r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
