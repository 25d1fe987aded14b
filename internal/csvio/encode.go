package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/dtslog/internal/record"
)

// utf8BOM prefixes exported CSV so spreadsheet applications detect UTF-8.
const utf8BOM = "\uFEFF"

// DefaultProjection is the canonical field order for exports.
var DefaultProjection = []string{
	"id", "kind", "dtsNo", "fromOffice", "details", "receivedBy", "toOffice", "date",
}

// Encode writes records as CSV: one header line, one line per record,
// lines joined with CRLF, output BOM-prefixed. Cells containing commas,
// quotes, or newlines are wrapped in double quotes with internal quotes
// doubled (RFC 4180). Cell content is otherwise emitted verbatim, so
// embedded line breaks in details survive the round trip.
//
// projection names the canonical fields to emit, in order; nil means
// DefaultProjection. Unknown field names are an error.
func Encode(w io.Writer, docs []record.DocumentRecord, projection []string) error {
	if projection == nil {
		projection = DefaultProjection
	}
	for _, name := range projection {
		if !knownField(name) {
			return fmt.Errorf("encode csv: unknown field %q", name)
		}
	}

	lines := make([]string, 0, len(docs)+1)
	lines = append(lines, strings.Join(projection, ","))
	for _, d := range docs {
		cells := make([]string, len(projection))
		for i, name := range projection {
			cells[i] = escapeCell(fieldValue(d, name))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	if _, err := io.WriteString(w, utf8BOM+strings.Join(lines, "\r\n")); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

// EncodeString is Encode into a string.
func EncodeString(docs []record.DocumentRecord, projection []string) (string, error) {
	var b strings.Builder
	if err := Encode(&b, docs, projection); err != nil {
		return "", err
	}
	return b.String(), nil
}

// escapeCell quotes a cell only when it needs it.
func escapeCell(s string) string {
	if strings.ContainsAny(s, "\",\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func knownField(name string) bool {
	switch name {
	case "id", "kind", "dtsNo", "fromOffice", "details", "receivedBy", "toOffice", "date":
		return true
	}
	return false
}

func fieldValue(d record.DocumentRecord, name string) string {
	switch name {
	case "id":
		return d.ID
	case "kind":
		return string(d.Kind)
	case "dtsNo":
		return d.DTSNo
	case "fromOffice":
		return d.FromOffice
	case "details":
		return d.Details
	case "receivedBy":
		return d.ReceivedBy
	case "toOffice":
		return d.ToOffice
	case "date":
		return d.Date
	}
	return ""
}
