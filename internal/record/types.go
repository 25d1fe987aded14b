package record

import "strings"

// Kind partitions the collection into two logical tables.
type Kind string

const (
	// KindForward marks a document forwarded to another office.
	KindForward Kind = "forward"

	// KindReceived marks a document received from another office.
	KindReceived Kind = "received"
)

// Valid reports whether k is one of the two recognized kinds.
func (k Kind) Valid() bool {
	return k == KindForward || k == KindReceived
}

// ParseKind maps arbitrary user or import input onto a Kind.
// Anything that is not (case-insensitively) "received" is forward,
// matching the import semantics of the original log.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindReceived)) {
		return KindReceived
	}
	return KindForward
}

// DocumentRecord is one forwarded or received document entry.
//
// All fields are plain strings. Details may contain embedded line breaks
// which must survive storage, export, and print rendering verbatim.
// For received documents DTSNo and ToOffice are conventionally empty, but
// this is only enforced on new creations and edits, never on stored data.
type DocumentRecord struct {
	// ID is assigned at creation and immutable thereafter. Unique across
	// the entire collection regardless of Kind.
	ID string `json:"id"`

	Kind       Kind   `json:"kind"`
	DTSNo      string `json:"dtsNo"`
	FromOffice string `json:"fromOffice"`
	Details    string `json:"details"`
	ReceivedBy string `json:"receivedBy"`
	ToOffice   string `json:"toOffice"`

	// Date is nominally YYYY-MM-DD but legacy data may carry other date
	// text. Empty when no source date existed.
	Date string `json:"date"`
}

// Partial is a partially-mapped record as produced by the CSV importer.
// Unmatched columns arrive as empty strings; the store derives identifiers
// and defaults the kind during merge.
type Partial struct {
	ID         string
	Kind       string
	DTSNo      string
	FromOffice string
	Details    string
	ReceivedBy string
	ToOffice   string
	Date       string
}

// Blank reports whether every mapped cell is empty or whitespace.
// Blank rows are skipped during merge and not counted as imported.
func (p Partial) Blank() bool {
	for _, v := range []string{p.ID, p.Kind, p.DTSNo, p.FromOffice, p.Details, p.ReceivedBy, p.ToOffice, p.Date} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
