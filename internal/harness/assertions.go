package harness

import (
	"fmt"

	"github.com/roach88/dtslog/internal/record"
)

// Check validates every assertion in the scenario against the run
// result and returns one error per failing assertion. A nil slice
// means the scenario passed.
func Check(scenario *Scenario, result *Result) []error {
	var errs []error
	for i, a := range scenario.Assertions {
		if err := checkAssertion(&a, result); err != nil {
			errs = append(errs, fmt.Errorf("assertions[%d] (%s): %w", i, a.Type, err))
		}
	}
	return errs
}

func checkAssertion(a *Assertion, result *Result) error {
	switch a.Type {
	case AssertCount:
		return checkCount(a, result)
	case AssertContains:
		return checkContains(a, result)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func checkCount(a *Assertion, result *Result) error {
	got := 0
	for _, rec := range result.Records {
		if a.View == "" || rec.Kind == record.Kind(a.View) {
			got++
		}
	}
	if got != a.Count {
		scope := "collection"
		if a.View != "" {
			scope = a.View + " view"
		}
		return fmt.Errorf("%s holds %d records, want %d", scope, got, a.Count)
	}
	return nil
}

func checkContains(a *Assertion, result *Result) error {
	for _, rec := range result.Records {
		if matchesFields(rec, a.Fields) {
			return nil
		}
	}
	return fmt.Errorf("no record matches %v", a.Fields)
}

// matchesFields reports whether every listed field of the record equals
// the expected value. Unlisted fields are ignored.
func matchesFields(rec record.DocumentRecord, fields map[string]string) bool {
	for name, want := range fields {
		got, ok := fieldValue(rec, name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func fieldValue(rec record.DocumentRecord, name string) (string, bool) {
	switch name {
	case "id":
		return rec.ID, true
	case "kind":
		return string(rec.Kind), true
	case "dtsNo":
		return rec.DTSNo, true
	case "fromOffice":
		return rec.FromOffice, true
	case "details":
		return rec.Details, true
	case "receivedBy":
		return rec.ReceivedBy, true
	case "toOffice":
		return rec.ToOffice, true
	case "date":
		return rec.Date, true
	default:
		return "", false
	}
}
