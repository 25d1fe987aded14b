package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dtslog/internal/record"
)

// snapshot is the golden-file shape: the scenario name plus the final
// collection in insertion order.
type snapshot struct {
	Scenario string                  `json:"scenario"`
	Records  []record.DocumentRecord `json:"records"`
}

// RunWithGolden executes a scenario, checks its assertions, and compares
// the final collection against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("run scenario %s: %v", scenario.Name, err)
	}

	for _, err := range Check(scenario, result) {
		t.Errorf("scenario %s: %v", scenario.Name, err)
	}

	data, err := json.MarshalIndent(snapshot{
		Scenario: scenario.Name,
		Records:  result.Records,
	}, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
