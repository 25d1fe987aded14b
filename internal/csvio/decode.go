package csvio

import (
	"errors"
	"strings"
)

// ErrMalformedImport is returned when an import file yields no rows at all.
var ErrMalformedImport = errors.New("malformed import file: no rows")

// Parse splits raw CSV text into rows of cells.
//
// Supported: quoted fields, quote escaping via doubled quotes, commas as
// separators, LF / CRLF / lone CR row terminators, embedded commas and
// newlines inside quoted fields, and a trailing row with no terminator.
// A leading byte-order mark is stripped. Parse never fails; malformed
// input degrades to odd cells, not errors.
func Parse(text string) [][]string {
	text = strings.TrimPrefix(text, utf8BOM)

	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n', '\r':
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			row = append(row, cell.String())
			rows = append(rows, row)
			row = nil
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}
	return rows
}
