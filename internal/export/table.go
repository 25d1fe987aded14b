// Package export renders record sequences into the formats the log can be
// taken out of: CSV, spreadsheet-compatible HTML, word-processor-compatible
// HTML, and a print/PDF table layout with per-row signature blocks.
package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/roach88/dtslog/internal/csvio"
	"github.com/roach88/dtslog/internal/record"
)

// tableColumns is the shared projection for the HTML table formats.
var tableColumns = []struct {
	label string
	value func(record.DocumentRecord) string
}{
	{"Kind", func(d record.DocumentRecord) string { return string(d.Kind) }},
	{"DTS Tracking No.", func(d record.DocumentRecord) string { return d.DTSNo }},
	{"From/Office", func(d record.DocumentRecord) string { return d.FromOffice }},
	{"Document Details", func(d record.DocumentRecord) string { return d.Details }},
	{"Received By", func(d record.DocumentRecord) string { return d.ReceivedBy }},
	{"To/Office", func(d record.DocumentRecord) string { return d.ToOffice }},
	{"Date", func(d record.DocumentRecord) string { return d.Date }},
	{"ID", func(d record.DocumentRecord) string { return d.ID }},
}

// BuildHTMLTable renders the plain table shared by the Excel and Word
// formats. border > 0 adds the legacy border attribute spreadsheet imports
// rely on.
func BuildHTMLTable(docs []record.DocumentRecord, border int) string {
	var b strings.Builder

	if border > 0 {
		fmt.Fprintf(&b, `<table border="%d">`, border)
	} else {
		b.WriteString("<table>")
	}

	b.WriteString("<thead><tr>")
	for _, col := range tableColumns {
		b.WriteString("<th>" + html.EscapeString(col.label) + "</th>")
	}
	b.WriteString("</tr></thead>")

	b.WriteString("<tbody>")
	for _, d := range docs {
		b.WriteString("<tr>")
		for _, col := range tableColumns {
			b.WriteString("<td>" + html.EscapeString(col.value(d)) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	return b.String()
}

// CSV encodes the records with the default projection.
func CSV(docs []record.DocumentRecord) (string, error) {
	return csvio.EncodeString(docs, nil)
}

// ExcelDocument wraps the shared table in the minimal HTML shell that
// spreadsheet applications accept as an .xls import.
func ExcelDocument(docs []record.DocumentRecord) string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Export</title></head>
<body>` + BuildHTMLTable(docs, 1) + `</body>
</html>`
}

// WordDocument wraps the shared table with inline styles so word
// processors render a bordered table from a .doc import.
func WordDocument(docs []record.DocumentRecord) string {
	return `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Export</title>
<style>
table{border-collapse:collapse;width:100%;font-family:Arial,sans-serif;font-size:12pt}
th,td{border:1px solid #999;padding:6px;vertical-align:top}
th{background:#eee}
</style>
</head>
<body>` + BuildHTMLTable(docs, 1) + `</body>
</html>`
}

// Filename builds the conventional export file name:
// documents_<view>_<YYYY-MM-DD>.<ext>.
func Filename(view record.Kind, ext string, now time.Time) string {
	return fmt.Sprintf("documents_%s_%s.%s", view, now.Format("2006-01-02"), ext)
}
