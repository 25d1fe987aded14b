package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dtslog/internal/record"
)

// Scenario defines a conformance test scenario.
// Scenarios exercise the store through a sequence of operations and
// assert on the resulting collection.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// snapshot filename.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed is an optional raw JSON array written into the slot before
	// any step runs. Seeding malformed or legacy rows exercises the
	// normalization pass on first load.
	Seed string `yaml:"seed,omitempty"`

	// IDPrefix overrides the deterministic id prefix. Defaults to "doc-",
	// producing doc-0001, doc-0002, ... in generation order.
	IDPrefix string `yaml:"id_prefix,omitempty"`

	// Steps contains the operations to run, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final collection.
	// Supported types: count, contains.
	Assertions []Assertion `yaml:"assertions"`
}

// Step represents a single store operation.
type Step struct {
	// Op names the operation: "add", "update", "delete" or "import".
	Op string `yaml:"op"`

	// Record holds the document fields for add and update, keyed by
	// field name (id, kind, dtsNo, fromOffice, details, receivedBy,
	// toOffice, date). Update requires an id.
	Record map[string]string `yaml:"record,omitempty"`

	// ID is the target identifier for delete.
	ID string `yaml:"id,omitempty"`

	// CSV is the import payload for import, header row included.
	CSV string `yaml:"csv,omitempty"`
}

// Assertion validates the final collection.
type Assertion struct {
	// Type is "count" or "contains".
	Type string `yaml:"type"`

	// View restricts a count assertion to one side of the log
	// ("forward" or "received"). Empty counts the whole collection.
	View string `yaml:"view,omitempty"`

	// Count is the expected number of records (used by count).
	Count int `yaml:"count,omitempty"`

	// Fields are expected field values (used by contains). Subset
	// match against a single record - every listed field must match
	// exactly, unlisted fields are ignored.
	Fields map[string]string `yaml:"fields,omitempty"`
}

// Assertion type constants.
const (
	AssertCount    = "count"
	AssertContains = "contains"
)

// Step operation constants.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpImport = "import"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, st *Step) error {
	switch st.Op {
	case OpAdd:
		if len(st.Record) == 0 {
			return fmt.Errorf("steps[%d]: record is required for add", index)
		}
	case OpUpdate:
		if len(st.Record) == 0 {
			return fmt.Errorf("steps[%d]: record is required for update", index)
		}
		if st.Record["id"] == "" {
			return fmt.Errorf("steps[%d]: record.id is required for update", index)
		}
	case OpDelete:
		if st.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for delete", index)
		}
	case OpImport:
		if st.CSV == "" {
			return fmt.Errorf("steps[%d]: csv is required for import", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
		if a.View != "" && !record.Kind(a.View).Valid() {
			return fmt.Errorf("assertions[%d]: unknown view %q", index, a.View)
		}
	case AssertContains:
		if len(a.Fields) == 0 {
			return fmt.Errorf("assertions[%d]: fields is required for contains", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
