package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/ingot/internal/plc"
)

func TestFillerLineScenario(t *testing.T) {
	s, err := LoadScenario("testdata/filler.yaml")
	require.NoError(t, err)

	result := RunWithGolden(t, s)
	assert.True(t, result.RoundTripOK)

	c := result.Controller()
	mod := c.Module("Filler_ENet")
	require.NotNil(t, mod)

	// The catalog config in testdata/configs matched the comm module.
	assert.Equal(t, plc.ControlsEthernet, mod.Controls)
	assert.Equal(t, "1756-EN2T", mod.DefinitionID)

	require.Len(t, mod.GeneratedTags, 1)
	assert.Equal(t, "Filler_ENet_CommOk", mod.GeneratedTags[0].Name)
	assert.Equal(t, "BOOL", mod.GeneratedTags[0].DataType)

	require.Len(t, mod.GeneratedRungs, 1)
	assert.Equal(t, "Main", mod.GeneratedRungs[0].Routine)
	assert.Equal(t,
		"XIC(Filler_ENet_CommOk)OTE(Filler_ENet_Healthy);",
		mod.GeneratedRungs[0].Text)
	assert.Equal(t,
		"Filler01 comms health for Filler_ENet",
		mod.GeneratedRungs[0].Comment)
}

func TestGenericFallbackScenario(t *testing.T) {
	score := 0.2
	s := &Scenario{
		Name:  "generic-fallback",
		Input: "filler.l5x",
		Descriptors: []DescriptorSpec{{
			ID:        "Palletizer",
			Datatypes: []string{"Pudc_*"},
			Modules:   []string{"*_ENet"},
			Programs:  []string{"Pal_*"},
		}},
		Expect: Expect{
			Variant:    "Generic",
			Score:      &score,
			Controller: "Filler01",
			RoundTrip:  true,
		},
		dir: "testdata",
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.Empty(t, Check(s, result))
	assert.True(t, result.Variant.IsGeneric())
}

func TestCheckReportsEveryMismatch(t *testing.T) {
	s, err := LoadScenario("testdata/filler.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	s.Expect.Variant = "Depalletizer"
	s.Expect.Controller = "Filler02"
	errs := Check(s, result)
	assert.Len(t, errs, 2)
}

func TestLoadDir(t *testing.T) {
	scenarios, err := LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "filler-line", scenarios[0].Name)
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := LoadScenario(write("noname.yaml", "input: x.l5x\n"))
	assert.ErrorContains(t, err, "requires a name")

	_, err = LoadScenario(write("noinput.yaml", "name: empty\n"))
	assert.ErrorContains(t, err, "requires an input")

	_, err = LoadScenario(write("bad.yaml", "name: [\n"))
	assert.ErrorContains(t, err, "parse scenario")

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read scenario")
}
