package harness

import (
	"fmt"

	"github.com/roach88/dtslog/internal/csvio"
	"github.com/roach88/dtslog/internal/record"
	"github.com/roach88/dtslog/internal/store"
	"github.com/roach88/dtslog/internal/testutil"
)

// defaultIDPrefix is the id prefix used when the scenario does not set one.
const defaultIDPrefix = "doc-"

// Result captures the outcome of a scenario run.
type Result struct {
	// Records is the final collection in insertion order.
	Records []record.DocumentRecord

	// Imported is the total row count accepted across import steps.
	Imported int

	// Deleted is the total record count removed across delete steps.
	Deleted int
}

// Run executes a scenario against a fresh in-memory store with a
// deterministic id source and returns the final collection.
//
// Run stops at the first failing step. Assertion checking is separate;
// see Check.
func Run(scenario *Scenario) (*Result, error) {
	prefix := scenario.IDPrefix
	if prefix == "" {
		prefix = defaultIDPrefix
	}

	slot := store.NewMemorySlot()
	if scenario.Seed != "" {
		slot.Seed([]byte(scenario.Seed))
	}
	st := store.New(slot, store.WithGenerator(testutil.NewSequenceIDs(prefix)))

	result := &Result{}
	for i, step := range scenario.Steps {
		if err := applyStep(st, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
	}

	docs, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("final load: %w", err)
	}
	result.Records = docs
	return result, nil
}

func applyStep(st *store.Store, step Step, result *Result) error {
	switch step.Op {
	case OpAdd:
		_, err := st.Add(stepRecord(step.Record))
		return err
	case OpUpdate:
		return st.Update(stepRecord(step.Record))
	case OpDelete:
		removed, err := st.DeleteByID(step.ID)
		if err != nil {
			return err
		}
		if removed {
			result.Deleted++
		}
		return nil
	case OpImport:
		rows, err := csvio.Import(step.CSV)
		if err != nil {
			return err
		}
		n, err := st.Merge(rows)
		if err != nil {
			return err
		}
		result.Imported += n
		return nil
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// stepRecord maps a scenario field map onto a document record.
// The kind defaults to forward for anything that is not "received",
// matching import semantics.
func stepRecord(m map[string]string) record.DocumentRecord {
	return record.DocumentRecord{
		ID:         m["id"],
		Kind:       record.ParseKind(m["kind"]),
		DTSNo:      m["dtsNo"],
		FromOffice: m["fromOffice"],
		Details:    m["details"],
		ReceivedBy: m["receivedBy"],
		ToOffice:   m["toOffice"],
		Date:       m["date"],
	}
}
