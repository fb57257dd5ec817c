package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/ingot/internal/plc"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []string{"GM"}, reg.IDs())
}

func TestDefaultDescriptorsMatchVendorController(t *testing.T) {
	c := plc.NewController("GM_Line1")
	require.NoError(t, c.AddDatatype(plc.NewDatatype("zz_Version")))
	require.NoError(t, c.AddModule(plc.NewModule("sz_Cell01", "1756-EN2T")))

	mcp := plc.NewProgram("MCP")
	require.NoError(t, c.AddProgram(mcp))
	safety := plc.NewProgram("s_Common")
	safety.Class = plc.ClassSafety
	require.NoError(t, c.AddProgram(safety))

	require.NoError(t, c.AddTag(plc.NewTag("z_NoData", "DINT")))

	v := NewFactory(DefaultRegistry()).Classify(c)
	assert.Equal(t, "GM", v.ID)
	assert.InDelta(t, 1.0, v.Score, 1e-9)
}

func TestDefaultDescriptorsFallThroughForForeignController(t *testing.T) {
	c := plc.NewController("Mixer01")
	require.NoError(t, c.AddTag(plc.NewTag("Mix_Speed", "DINT")))

	v := NewFactory(DefaultRegistry()).Classify(c)
	assert.True(t, v.IsGeneric())
}
