// Package harness provides scenario-driven conformance tests for the
// document store.
//
// Scenarios describe a sequence of store operations in YAML, run them
// against a fresh in-memory store with a deterministic identifier source,
// and assert on the final collection. The final state can additionally be
// compared against a golden snapshot.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	seed: '[{"dtsNo":"DTS-7","details":"legacy row"}]'
//	steps:
//	  - op: add
//	    record: { kind: forward, dtsNo: DTS-1, details: Budget proposal }
//	  - op: update
//	    record: { id: doc-0001, kind: forward, details: Revised proposal }
//	  - op: import
//	    csv: |
//	      Type,Document Details,Date
//	      forward,Leave application,2024-03-03
//	  - op: delete
//	    id: doc-0002
//	assertions:
//	  - type: count
//	    view: forward
//	    count: 2
//	  - type: contains
//	    fields: { id: doc-0001, details: Revised proposal }
//
// The optional seed is a raw JSON array written into the slot before any
// step runs, which exercises the legacy-healing path on first load.
//
// # Assertion Types
//
//   - count: the collection (or one view of it) holds exactly N records
//   - contains: some record matches every listed field exactly
//
// # Deterministic Testing
//
// Scenarios execute against an in-memory slot with a sequence identifier
// generator, so generated ids are doc-0001, doc-0002, ... in step order.
// This keeps golden snapshots identical across runs.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/forward_lifecycle.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//
// Or compare against a golden snapshot inside a test:
//
//	harness.RunWithGolden(t, scenario)
package harness
