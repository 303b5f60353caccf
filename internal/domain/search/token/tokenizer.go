package token

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	integerRe = regexp.MustCompile(`^\d+$`)
	amountRe  = regexp.MustCompile(`^[$€£¥]?(\d+(?:\.\d+)?)$`)

	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDateRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	dashDateRe  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// Normalize percent-decodes raw, turns '+' into spaces, lowercases and
// collapses whitespace. Undecodable input is normalized as-is and bytes
// that are not valid UTF-8 are dropped.
func Normalize(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	decoded = strings.ToValidUTF8(decoded, "")
	decoded = strings.ReplaceAll(decoded, "+", " ")
	return strings.Join(strings.Fields(strings.ToLower(decoded)), " ")
}

// Tokenize normalizes raw and classifies the whole text and each word.
func Tokenize(raw string) Query {
	normalized := Normalize(raw)
	q := Query{original: raw, normalized: normalized}
	if normalized == "" {
		return q
	}

	q.whole = Classify(normalized)
	fields := strings.Fields(normalized)
	q.words = make([]Token, 0, len(fields))
	for _, w := range fields {
		q.words = append(q.words, Classify(w))
	}
	return q
}

// Classify assigns a kind to s. Precedence: Date, Integer, Amount, Text.
// Anything that fails to parse cleanly is Text.
func Classify(s string) Token {
	if d, ok := parseDate(s); ok {
		return Token{raw: s, kind: Date, date: d}
	}
	if integerRe.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil && n > 0 {
			return Token{raw: s, kind: Integer, integer: n}
		}
		return Token{raw: s, kind: Text}
	}
	if m := amountRe.FindStringSubmatch(s); m != nil {
		if v, err := decimal.NewFromString(m[1]); err == nil {
			return Token{raw: s, kind: Amount, amount: v}
		}
	}
	return Token{raw: s, kind: Text}
}

func parseDate(s string) (time.Time, bool) {
	var y, m, d string
	switch {
	case isoDateRe.MatchString(s):
		p := isoDateRe.FindStringSubmatch(s)
		y, m, d = p[1], p[2], p[3]
	case slashDateRe.MatchString(s):
		p := slashDateRe.FindStringSubmatch(s)
		m, d, y = p[1], p[2], p[3]
	case dashDateRe.MatchString(s):
		p := dashDateRe.FindStringSubmatch(s)
		m, d, y = p[1], p[2], p[3]
	default:
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 02-30 into March; reject anything that rolled over.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
