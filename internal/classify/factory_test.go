package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/ingot/internal/plc"
)

func fillerController(t *testing.T) *plc.Controller {
	t.Helper()
	c := plc.NewController("Filler01")

	require.NoError(t, c.AddDatatype(plc.NewDatatype("Fudc_Valve")))
	require.NoError(t, c.AddDatatype(plc.NewDatatype("Udt_Generic")))

	require.NoError(t, c.AddModule(plc.NewModule("Filler_ENet", "1756-EN2T")))

	main := plc.NewProgram("Filler_Main")
	require.NoError(t, c.AddProgram(main))
	safety := plc.NewProgram("Filler_Safety")
	safety.Class = plc.ClassSafety
	require.NoError(t, c.AddProgram(safety))

	require.NoError(t, c.AddTag(plc.NewTag("Filler_Speed", "DINT")))
	return c
}

func fillerDescriptor() Descriptor {
	return Descriptor{
		ID:             "Filler",
		Datatypes:      []string{"Fudc_*"},
		Modules:        []string{"Filler_*"},
		Programs:       []string{"Filler_Main"},
		SafetyPrograms: []string{"Filler_Safety"},
		Tags:           []string{"Filler_*"},
	}
}

func TestClassifyFullScore(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(fillerDescriptor()))

	v := NewFactory(reg).Classify(fillerController(t))
	assert.Equal(t, "Filler", v.ID)
	assert.InDelta(t, 1.0, v.Score, 1e-9)
	assert.False(t, v.IsGeneric())
}

func TestGlobPatternsMatchPrefixes(t *testing.T) {
	c := plc.NewController("X")
	require.NoError(t, c.AddDatatype(plc.NewDatatype("Fudc_Valve")))
	require.NoError(t, c.AddDatatype(plc.NewDatatype("Fudc_")))
	require.NoError(t, c.AddDatatype(plc.NewDatatype("NotFudc_Valve")))

	m, err := compileMatcher(Descriptor{ID: "D", Datatypes: []string{"Fudc_*"}})
	require.NoError(t, err)

	// "Fudc_*" matches "Fudc_Valve" and bare "Fudc_" but the glob is
	// anchored, so "NotFudc_Valve" alone would not pass.
	assert.InDelta(t, 0.2, m.Score(c), 1e-9)

	only := plc.NewController("Y")
	require.NoError(t, only.AddDatatype(plc.NewDatatype("NotFudc_Valve")))
	assert.InDelta(t, 0.0, m.Score(only), 1e-9)
}

func TestEmptyPatternSetFailsItsCheck(t *testing.T) {
	desc := fillerDescriptor()
	desc.SafetyPrograms = nil

	reg := NewRegistry()
	require.NoError(t, reg.Register(desc))

	v := NewFactory(reg).Classify(fillerController(t))
	assert.InDelta(t, 0.8, v.Score, 1e-9)
}

func TestBelowThresholdFallsBackToGeneric(t *testing.T) {
	// Two of five checks pass: score 0.4 against threshold 0.5.
	desc := Descriptor{
		ID:        "Filler",
		Datatypes: []string{"Fudc_*"},
		Modules:   []string{"Filler_*"},
	}
	reg := NewRegistry()
	require.NoError(t, reg.Register(desc))

	f := NewFactory(reg, WithThreshold(0.5))
	v := f.Classify(fillerController(t))
	assert.True(t, v.IsGeneric())
	assert.Equal(t, GenericID, v.ID)
	assert.InDelta(t, 0.4, v.Score, 1e-9)

	// The default threshold accepts the same score.
	v = NewFactory(reg).Classify(fillerController(t))
	assert.Equal(t, "Filler", v.ID)
}

func TestTieBreaksToEarliestRegistered(t *testing.T) {
	a := Descriptor{ID: "A", Tags: []string{"Filler_*"}, Modules: []string{"Filler_*"}}
	b := Descriptor{ID: "B", Tags: []string{"Filler_*"}, Modules: []string{"Filler_*"}}

	reg := NewRegistry()
	require.NoError(t, reg.Register(a))
	require.NoError(t, reg.Register(b))

	f := NewFactory(reg, WithThreshold(0.3))
	c := fillerController(t)
	for i := 0; i < 5; i++ {
		v := f.Classify(c)
		assert.Equal(t, "A", v.ID)
	}

	scores := f.Scores(c)
	require.Len(t, scores, 2)
	assert.Equal(t, scores[0].Score, scores[1].Score)
}

func TestNoDescriptorsYieldsGeneric(t *testing.T) {
	v := NewFactory(NewRegistry()).Classify(fillerController(t))
	assert.True(t, v.IsGeneric())
	assert.Zero(t, v.Score)
}

func TestRegistryRejectsBadPatternsAndDuplicates(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Descriptor{ID: "Bad", Tags: []string{"[unterminated"}})
	require.Error(t, err)
	assert.Equal(t, 0, reg.Len())

	require.NoError(t, reg.Register(fillerDescriptor()))
	assert.Error(t, reg.Register(fillerDescriptor()))
	assert.Error(t, reg.Register(Descriptor{}))
	assert.Equal(t, []string{"Filler"}, reg.IDs())
}
