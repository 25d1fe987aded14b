package record

import "strconv"

// Raw is an arbitrary-keyed record as read from the persisted slot.
// Legacy records may lack id or kind, and may carry the date under the
// older dateForwarded key.
type Raw map[string]any

// Normalize migrates a raw record into the current schema and reports
// whether anything had to change. Rules, applied in order:
//
//  1. Missing/empty id: assign a freshly generated unique id. The caller
//     supplies the set of ids already seen so the same load pass cannot
//     hand out duplicates.
//  2. Missing/empty or unrecognized kind: coerce to forward.
//  3. Missing/empty date with a legacy dateForwarded present: copy it.
//  4. Every other canonical field passes through, defaulting to "".
//
// Normalize is idempotent: feeding its output back in reports changed=false.
func Normalize(raw Raw, gen Generator, existing map[string]struct{}) (DocumentRecord, bool, error) {
	rec := DocumentRecord{
		ID:         stringField(raw, "id"),
		DTSNo:      stringField(raw, "dtsNo"),
		FromOffice: stringField(raw, "fromOffice"),
		Details:    stringField(raw, "details"),
		ReceivedBy: stringField(raw, "receivedBy"),
		ToOffice:   stringField(raw, "toOffice"),
		Date:       stringField(raw, "date"),
	}

	changed := false

	if rec.ID == "" {
		id, err := GenerateUnique(gen, existing)
		if err != nil {
			return DocumentRecord{}, false, err
		}
		rec.ID = id
		changed = true
	}

	if k := Kind(stringField(raw, "kind")); k.Valid() {
		rec.Kind = k
	} else {
		rec.Kind = KindForward
		changed = true
	}

	if rec.Date == "" {
		if df := stringField(raw, "dateForwarded"); df != "" {
			rec.Date = df
			changed = true
		}
	}

	return rec, changed, nil
}

// AsRaw converts a canonical record back into its raw map form.
// Useful for tests exercising normalization idempotence.
func (d DocumentRecord) AsRaw() Raw {
	return Raw{
		"id":         d.ID,
		"kind":       string(d.Kind),
		"dtsNo":      d.DTSNo,
		"fromOffice": d.FromOffice,
		"details":    d.Details,
		"receivedBy": d.ReceivedBy,
		"toOffice":   d.ToOffice,
		"date":       d.Date,
	}
}

// stringField extracts a scalar value as a string. JSON decoding yields
// string, float64, bool or nil for scalars; containers are ignored.
func stringField(raw Raw, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
