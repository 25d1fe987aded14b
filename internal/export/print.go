package export

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/roach88/dtslog/internal/record"
)

// Title builds the print heading for a view, with an optional scope suffix
// ("Selected", "All (Filtered)").
func Title(view record.Kind, scope string) string {
	base := "Forwarded Documents"
	if view == record.KindReceived {
		base = "Received Documents"
	}
	if scope == "" {
		return base
	}
	return base + " — " + scope
}

// PrintDocument renders the full print/PDF page: A4 layout, fixed column
// widths, a signature block inside every Received By cell, and details
// rendered in a pre block so embedded line breaks survive.
func PrintDocument(title string, docs []record.DocumentRecord) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html><head>
<meta charset="UTF-8">
<title>` + html.EscapeString(title) + `</title>
<style>
@page { size: A4 portrait; margin: 10mm; }
body{font-family:Arial,sans-serif;font-size:13px;line-height:1.35;color:#111}
h1{font-size:16px;margin:0 0 10px 0;text-align:center;letter-spacing:.2px}
table{border-collapse:collapse;width:100%;table-layout:fixed}
th,td{border:1px solid #999;padding:6px 8px;vertical-align:top;font-size:11.5px;white-space:normal;overflow-wrap:anywhere;word-break:break-word}
th{background:#eee;font-size:12px}
.nowrap{white-space:nowrap}
.dts-col{white-space:normal;font-size:11.5px}
.tooffice-col{font-size:11.5px}
.date-col{text-align:center;white-space:nowrap;font-size:11px}
.rb-cell{display:flex;flex-direction:column;gap:8px}
.rb-name{font-weight:bold;font-size:12px}
.rb-box{width:100%;height:24mm;border:1.4px solid #000;border-radius:4px}
.rb-caption{font-size:11px;color:#222}
.prewrap{white-space:pre-wrap;margin:0;font-family:inherit}
.details-cell{white-space:normal}
</style>
</head>
<body>
<h1>` + html.EscapeString(title) + `</h1>
`)
	b.WriteString(buildPrintTable(docs))
	b.WriteString(`
</body></html>`)

	return b.String()
}

// printHeaders pairs each label with the class giving it its fixed print
// behavior; widths come from the colgroup below.
var printHeaders = []struct{ label, class string }{
	{"DTS Tracking No.", "dts-col"},
	{"From/Office", ""},
	{"Document Details", ""},
	{"Received By", ""},
	{"To/Office", "nowrap"},
	{"Date", "nowrap"},
}

func buildPrintTable(docs []record.DocumentRecord) string {
	var b strings.Builder
	b.WriteString("<table>")

	// Wider To/Office + Date keep those cells on one line inside the borders.
	b.WriteString(`<colgroup>` +
		`<col style="width:18%">` +
		`<col style="width:15%">` +
		`<col style="width:25%">` +
		`<col style="width:17%">` +
		`<col style="width:15%">` +
		`<col style="width:10%">` +
		`</colgroup>`)

	b.WriteString("<thead><tr>")
	for _, h := range printHeaders {
		b.WriteString(`<th class="` + h.class + `">` + html.EscapeString(h.label) + "</th>")
	}
	b.WriteString("</tr></thead>")

	b.WriteString("<tbody>")
	for _, d := range docs {
		b.WriteString("<tr>")
		b.WriteString(`<td class="dts-col">` + html.EscapeString(d.DTSNo) + "</td>")
		b.WriteString("<td>" + html.EscapeString(d.FromOffice) + "</td>")
		b.WriteString(`<td class="details-cell">` + multilinePre(d.Details) + "</td>")
		b.WriteString("<td>" + signatureCell(d.ReceivedBy) + "</td>")
		b.WriteString(`<td class="tooffice-col">` + html.EscapeString(d.ToOffice) + "</td>")
		b.WriteString(`<td class="date-col">` + html.EscapeString(FormatDateForPrint(d.Date)) + "</td>")
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	return b.String()
}

// signatureCell embeds the receiver name above an empty signature box.
func signatureCell(receivedBy string) string {
	return `<div class="rb-cell">` +
		`<div class="rb-name">` + html.EscapeString(receivedBy) + `</div>` +
		`<div class="rb-box"></div>` +
		`<div class="rb-caption">Receiver Signature / Name &amp; Date</div>` +
		`</div>`
}

// multilinePre preserves line breaks and spaces from free-text details.
func multilinePre(s string) string {
	return `<pre class="prewrap">` + html.EscapeString(s) + `</pre>`
}

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// printDateLayouts are tried in order when the date is not ISO-prefixed.
var printDateLayouts = []string{
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// FormatDateForPrint guarantees a short date that fits the print cell:
// ISO-prefixed input keeps its first 10 characters; other recognizable
// formats are reparsed to YYYY-MM-DD; anything else is truncated to 16
// characters as a last-resort overflow guard.
func FormatDateForPrint(dateStr string) string {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return ""
	}

	if isoPrefix.MatchString(s) {
		return s[:10]
	}

	for _, layout := range printDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if r := []rune(s); len(r) > 16 {
		return string(r[:16])
	}
	return s
}
