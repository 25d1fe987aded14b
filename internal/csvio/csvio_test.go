package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dtslog/internal/record"
)

func TestEncode_BOMAndCRLF(t *testing.T) {
	out, err := EncodeString([]record.DocumentRecord{
		{ID: "a", Kind: record.KindForward, DTSNo: "DTS-1", Date: "2024-01-05"},
	}, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "output must start with a BOM")
	assert.Equal(t,
		"id,kind,dtsNo,fromOffice,details,receivedBy,toOffice,date\r\n"+
			"a,forward,DTS-1,,,,,2024-01-05",
		strings.TrimPrefix(out, "\uFEFF"))
}

func TestEncode_QuotesSpecialCells(t *testing.T) {
	out, err := EncodeString([]record.DocumentRecord{
		{ID: "a", Kind: record.KindForward, Details: `has, comma and "quote"`},
	}, []string{"details"})
	require.NoError(t, err)

	assert.Equal(t, "\uFEFFdetails\r\n\"has, comma and \"\"quote\"\"\"", out)
}

func TestEncode_UnknownFieldRejected(t *testing.T) {
	_, err := EncodeString(nil, []string{"id", "nope"})
	assert.ErrorContains(t, err, `unknown field "nope"`)
}

func TestParse_Terminators(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{"lf", "a,b\nc,d\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"crlf", "a,b\r\nc,d\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"lone cr", "a,b\rc,d", [][]string{{"a", "b"}, {"c", "d"}}},
		{"trailing row no newline", "a,b\nc,d", [][]string{{"a", "b"}, {"c", "d"}}},
		{"empty text", "", nil},
		{"ragged rows", "a\nb,c,d\n", [][]string{{"a"}, {"b", "c", "d"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestParse_QuotedFields(t *testing.T) {
	text := "details,date\r\n\"Line1\nLine2, \"\"quoted\"\"\",2024-01-05\r\n"
	rows := Parse(text)

	require.Len(t, rows, 2)
	assert.Equal(t, "Line1\nLine2, \"quoted\"", rows[1][0])
	assert.Equal(t, "2024-01-05", rows[1][1])
}

func TestParse_StripsBOM(t *testing.T) {
	rows := Parse("\uFEFFid,kind\n1,forward\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
}

func TestImport_HeaderAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
		check  func(t *testing.T, p record.Partial)
	}{
		{
			"canonical names", "id,kind,dtsNo,fromOffice,details,receivedBy,toOffice,date",
			func(t *testing.T, p record.Partial) {
				assert.Equal(t, "v1", p.ID)
				assert.Equal(t, "v8", p.Date)
			},
		},
		{
			"spreadsheet names", "ID,Type,DTS Tracking No,From/Office,Document Details,Received By,To/Office,Date Forwarded",
			func(t *testing.T, p record.Partial) {
				assert.Equal(t, "v2", p.Kind)
				assert.Equal(t, "v3", p.DTSNo)
				assert.Equal(t, "v8", p.Date)
			},
		},
		{
			"first alias wins", "date,dateforwarded,x,x,x,x,x,x",
			func(t *testing.T, p record.Partial) {
				assert.Equal(t, "v1", p.Date)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := Import(tt.header + "\r\nv1,v2,v3,v4,v5,v6,v7,v8")
			require.NoError(t, err)
			require.Len(t, parts, 1)
			tt.check(t, parts[0])
		})
	}
}

func TestImport_UnmatchedFieldsEmpty(t *testing.T) {
	parts, err := Import("details\nonly details here")
	require.NoError(t, err)
	require.Len(t, parts, 1)

	assert.Equal(t, "only details here", parts[0].Details)
	assert.Empty(t, parts[0].ID)
	assert.Empty(t, parts[0].Date)
}

func TestImport_EmptyFileMalformed(t *testing.T) {
	_, err := Import("")
	assert.ErrorIs(t, err, ErrMalformedImport)
}

func TestRoundTrip_PreservesAwkwardDetails(t *testing.T) {
	docs := []record.DocumentRecord{
		{
			ID:         "rt_1",
			Kind:       record.KindForward,
			DTSNo:      "DTS-7",
			FromOffice: "Legal, Dept",
			Details:    "Line1\nLine2, \"quoted\"",
			ReceivedBy: "A. \"Bong\" Reyes",
			ToOffice:   "Mayor's Office",
			Date:       "2024-03-14",
		},
		{
			ID:   "rt_2",
			Kind: record.KindReceived,
		},
	}

	out, err := EncodeString(docs, nil)
	require.NoError(t, err)

	parts, err := Import(out)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, docs[0].ID, parts[0].ID)
	assert.Equal(t, string(docs[0].Kind), parts[0].Kind)
	assert.Equal(t, docs[0].DTSNo, parts[0].DTSNo)
	assert.Equal(t, docs[0].FromOffice, parts[0].FromOffice)
	assert.Equal(t, docs[0].Details, parts[0].Details, "embedded newline and quotes must survive")
	assert.Equal(t, docs[0].ReceivedBy, parts[0].ReceivedBy)
	assert.Equal(t, docs[0].ToOffice, parts[0].ToOffice)
	assert.Equal(t, docs[0].Date, parts[0].Date)

	assert.Equal(t, "rt_2", parts[1].ID)
	assert.Equal(t, "received", parts[1].Kind)
}
