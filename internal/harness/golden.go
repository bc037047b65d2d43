package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/casedocs/redline/internal/engine"
)

// Snapshot captures the settled state of a scenario execution. Field
// order is fixed by the struct, so serialization is deterministic and
// safe to compare byte-for-byte.
type Snapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Report       snapshotReport   `json:"report"`
	Paragraphs   []ParagraphState `json:"paragraphs"`
}

type snapshotReport struct {
	Changed      bool `json:"changed"`
	Applications int  `json:"applications"`
	Errors       int  `json:"errors"`
}

func newSnapshot(name string, result *Result) Snapshot {
	report := result.Report
	if report == nil {
		report = &engine.Report{}
	}
	return Snapshot{
		ScenarioName: name,
		Report: snapshotReport{
			Changed:      report.Changed,
			Applications: report.Applications,
			Errors:       report.Errors,
		},
		Paragraphs: result.Paragraphs,
	}
}

// RunWithGolden executes a scenario and compares its snapshot against the
// golden file testdata/golden/{scenario.Name}.golden. Assertion failures
// inside the scenario are reported before the golden comparison.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-obtained result against the golden
// file for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := json.MarshalIndent(newSnapshot(scenarioName, result), "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
