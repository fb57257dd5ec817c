package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, verifies its expectations, and
// compares the serialized controller against the golden file in
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) *Result {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		t.Fatalf("scenario %q: %v", s.Name, err)
	}
	for _, err := range Check(s, result) {
		t.Errorf("scenario %q: %v", s.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, result.Serialized)
	return result
}
