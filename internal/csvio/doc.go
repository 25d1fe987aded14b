// Package csvio encodes document records to CSV and parses arbitrary CSV
// files back into rows for import.
//
// Encoding follows RFC 4180 quoting with CRLF line endings and a UTF-8
// byte-order mark prefix for spreadsheet compatibility. Cell content is
// emitted verbatim inside quotes: embedded newlines in details must survive
// an encode/parse round trip, which rules out csv.Writer (it rewrites
// newlines inside quoted fields when UseCRLF is set).
//
// Decoding is deliberately NOT encoding/csv either: the importer must accept
// whatever a user exports from a spreadsheet, including ragged rows, bare
// quotes mid-field, and lone CR line terminators, all of which csv.Reader
// rejects or mangles. A small character-level state machine parses the
// whole file into rows without ever failing on malformed cells.
//
// Header mapping translates heterogeneous column names (case-insensitive
// alias lists per canonical field) onto record.Partial values for merge.
package csvio
