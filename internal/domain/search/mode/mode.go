package mode

import "strings"

// Mode selects how the query is matched against the searchable fields.
type Mode string

// Match mode constants.
const (
	// Partial matches every word independently across the fields.
	Partial Mode = "partial"
	// Exact and Phrase require the whole normalized query in one field.
	// They plan identically.
	Exact  Mode = "exact"
	Phrase Mode = "phrase"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Partial || m == Exact || m == Phrase
}

// WholeQuery reports whether the mode matches the query as a single unit.
func (m Mode) WholeQuery() bool {
	return m == Exact || m == Phrase
}

// Parse resolves a caller-supplied mode. Empty or unknown values fall back
// to the given default, never to an error.
func Parse(raw string, fallback Mode) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if m.IsValid() {
		return m
	}
	if fallback.IsValid() {
		return fallback
	}
	return Partial
}
