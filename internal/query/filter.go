// Package query evaluates user-supplied filter predicates against document
// records. Filtering is pure: the store loads, query matches, the caller
// renders.
package query

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/dtslog/internal/record"
)

// Filters holds the active predicates. Empty fields are inactive; a record
// passes only if every active predicate passes.
//
// Two date policies exist because the product grew two of them: Date is a
// single exact-date match (plain string equality, so an empty record date
// never matches), DateFrom/DateTo is an inclusive calendar range. Callers
// expose one or the other depending on mode; setting both just ANDs them.
type Filters struct {
	// Text is matched as a case-insensitive substring across all display
	// fields of the record.
	Text string

	// Date matches record.Date exactly (YYYY-MM-DD).
	Date string

	// DateFrom / DateTo bound an inclusive range (YYYY-MM-DD). A record
	// with an empty or unparseable date is treated as the earliest
	// possible date: it fails any lower bound and passes any upper bound.
	DateFrom string
	DateTo   string
}

// Active reports whether any predicate is set.
func (f Filters) Active() bool {
	return f.Text != "" || f.Date != "" || f.DateFrom != "" || f.DateTo != ""
}

// Matches evaluates a record against the view partition and filters.
// A record whose kind differs from the view never matches, regardless of
// filters.
func Matches(rec record.DocumentRecord, view record.Kind, f Filters) bool {
	if rec.Kind != view {
		return false
	}

	if q := fold(f.Text); q != "" {
		hay := strings.Join([]string{
			fold(rec.DTSNo),
			fold(rec.FromOffice),
			fold(rec.Details),
			fold(rec.ReceivedBy),
			fold(rec.ToOffice),
			fold(rec.Date),
		}, " | ")
		if !strings.Contains(hay, q) {
			return false
		}
	}

	if f.Date != "" && rec.Date != f.Date {
		return false
	}

	if f.DateFrom != "" || f.DateTo != "" {
		d := parseDay(rec.Date)
		if f.DateFrom != "" {
			if from, ok := parseBound(f.DateFrom); ok && d.Before(from) {
				return false
			}
		}
		if f.DateTo != "" {
			if to, ok := parseBound(f.DateTo); ok && d.After(to) {
				return false
			}
		}
	}

	return true
}

// Filter returns the records matching the view and filters, preserving the
// input order.
func Filter(docs []record.DocumentRecord, view record.Kind, f Filters) []record.DocumentRecord {
	out := make([]record.DocumentRecord, 0, len(docs))
	for _, d := range docs {
		if Matches(d, view, f) {
			out = append(out, d)
		}
	}
	return out
}

// fold lowercases after NFC normalization so composed and decomposed forms
// of the same text compare equal.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// parseDay parses a record date, falling back to the zero time (the
// earliest sentinel) when empty or unparseable.
func parseDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseBound parses a filter bound; an unparseable bound is ignored rather
// than silently excluding everything.
func parseBound(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
