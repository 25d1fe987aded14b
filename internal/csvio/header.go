package csvio

import (
	"strings"

	"github.com/roach88/dtslog/internal/record"
)

// headerAliases maps each canonical field to the header names accepted for
// it, lowercased and trimmed. First alias found in the header row wins.
var headerAliases = map[string][]string{
	"id":         {"id"},
	"kind":       {"kind", "type"},
	"dtsNo":      {"dtsno", "dts no", "dts tracking no", "tracking no", "tracking"},
	"fromOffice": {"fromoffice", "from/office", "from", "office from"},
	"details":    {"details", "document details", "document", "desc", "description"},
	"receivedBy": {"receivedby", "received by"},
	"toOffice":   {"tooffice", "to/office", "to", "office to"},
	"date":       {"date", "dateforwarded", "date forwarded", "date received"},
}

// columns holds the resolved header index per canonical field, -1 when no
// alias matched. Unmatched fields default every row's value to "".
type columns struct {
	id, kind, dtsNo, fromOffice, details, receivedBy, toOffice, date int
}

func mapHeader(header []string) columns {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	find := func(field string) int {
		for _, alias := range headerAliases[field] {
			for i, h := range normalized {
				if h == alias {
					return i
				}
			}
		}
		return -1
	}

	return columns{
		id:         find("id"),
		kind:       find("kind"),
		dtsNo:      find("dtsNo"),
		fromOffice: find("fromOffice"),
		details:    find("details"),
		receivedBy: find("receivedBy"),
		toOffice:   find("toOffice"),
		date:       find("date"),
	}
}

func (c columns) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (c columns) mapRow(row []string) record.Partial {
	return record.Partial{
		ID:         c.cell(row, c.id),
		Kind:       c.cell(row, c.kind),
		DTSNo:      c.cell(row, c.dtsNo),
		FromOffice: c.cell(row, c.fromOffice),
		Details:    c.cell(row, c.details),
		ReceivedBy: c.cell(row, c.receivedBy),
		ToOffice:   c.cell(row, c.toOffice),
		Date:       c.cell(row, c.date),
	}
}

// Import parses CSV text and maps every data row onto a partial record
// using the header aliases. The first row is always the header. Blank-row
// skipping is the store's concern during merge; Import maps everything.
//
// Returns ErrMalformedImport when the text yields no rows at all.
func Import(text string) ([]record.Partial, error) {
	rows := Parse(text)
	if len(rows) == 0 {
		return nil, ErrMalformedImport
	}

	cols := mapHeader(rows[0])
	parts := make([]record.Partial, 0, len(rows)-1)
	for _, row := range rows[1:] {
		parts = append(parts, cols.mapRow(row))
	}
	return parts, nil
}
