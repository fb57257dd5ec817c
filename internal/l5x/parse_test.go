package l5x

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniProject = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<RSLogix5000Content SchemaRevision="1.0" SoftwareRevision="33.00" TargetName="Line4">
  <Controller Name="Line4" ProcessorType="1756-L83ES" MajorRev="33">
    <DataTypes>
      <DataType Name="Udt_Valve" Family="NoFamily" Class="User">
        <Members>
          <Member Name="Open" DataType="BOOL" BitNumber="0"/>
          <Member Name="Closed" DataType="BOOL" BitNumber="0"/>
        </Members>
      </DataType>
    </DataTypes>
    <Tags>
      <Tag Name="Speed" TagType="Base" DataType="DINT" Class="Standard"/>
    </Tags>
    <Programs>
      <Program Name="MainProgram" MainRoutineName="MainRoutine">
        <Tags>
          <Tag Name="Speed" TagType="Base" DataType="REAL"/>
        </Tags>
        <Routines>
          <Routine Name="MainRoutine" Type="RLL">
            <RLLContent>
              <Rung Number="0" Type="N">
                <Comment>Seal-in circuit</Comment>
                <Text>XIC(Start)OTE(Run);</Text>
              </Rung>
            </RLLContent>
          </Routine>
        </Routines>
      </Program>
    </Programs>
  </Controller>
</RSLogix5000Content>
`

func TestParsePreservesOrder(t *testing.T) {
	root, err := Parse(strings.NewReader(miniProject))
	require.NoError(t, err)
	require.Equal(t, RootName, root.Name)

	// Attribute order is document order.
	require.Len(t, root.Attrs, 3)
	assert.Equal(t, "SchemaRevision", root.Attrs[0].Name)
	assert.Equal(t, "SoftwareRevision", root.Attrs[1].Name)
	assert.Equal(t, "TargetName", root.Attrs[2].Name)

	controller := root.Child("Controller")
	require.NotNil(t, controller)
	assert.Equal(t, "Line4", controller.AttrDefault("Name", ""))

	// Child order is document order.
	names := make([]string, len(controller.Children))
	for i, c := range controller.Children {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"DataTypes", "Tags", "Programs"}, names)
}

func TestParseKeepsRungText(t *testing.T) {
	root, err := Parse(strings.NewReader(miniProject))
	require.NoError(t, err)

	rung := root.Child("Controller").
		Child("Programs").Child("Program").
		Child("Routines").Child("Routine").
		Child("RLLContent").Child("Rung")
	require.NotNil(t, rung)
	assert.Equal(t, "0", rung.AttrDefault("Number", ""))
	assert.Equal(t, "XIC(Start)OTE(Run);", rung.Child("Text").Text)
	assert.Equal(t, "Seal-in circuit", rung.Child("Comment").Text)
}

func TestParseRejectsMalformedMarkup(t *testing.T) {
	_, err := Parse(strings.NewReader("<RSLogix5000Content><Controller></RSLogix5000Content>"))
	require.Error(t, err)
	assert.True(t, IsStructural(err))

	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Greater(t, se.Line, 0)
}

func TestParseRejectsUnexpectedRoot(t *testing.T) {
	_, err := Parse(strings.NewReader("<Project><Controller/></Project>"))
	require.Error(t, err)
	assert.True(t, IsStructural(err))
	assert.Contains(t, err.Error(), "unexpected document element")
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, IsStructural(err))
}

func TestParseRejectsCustomEntities(t *testing.T) {
	doc := `<!DOCTYPE RSLogix5000Content [<!ENTITY payload "boom">]>
<RSLogix5000Content><Controller Name="&payload;"/></RSLogix5000Content>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, IsStructural(err))
}

func TestParseAllowsPredefinedEntities(t *testing.T) {
	doc := `<RSLogix5000Content><Controller Name="A&amp;B"><Description>x &lt; y</Description></Controller></RSLogix5000Content>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	controller := root.Child("Controller")
	assert.Equal(t, "A&B", controller.AttrDefault("Name", ""))
	assert.Equal(t, "x < y", controller.Child("Description").Text)
}

func TestParseStripsNamespacePrefixes(t *testing.T) {
	doc := `<RSLogix5000Content xmlns:v="http://example.com/vendor"><v:Controller v:Name="P"/></RSLogix5000Content>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	controller := root.Child("Controller")
	require.NotNil(t, controller)
	assert.Equal(t, "P", controller.AttrDefault("Name", ""))
	// The xmlns declaration itself is dropped.
	_, ok := root.Attr("v")
	assert.False(t, ok)
}

func TestParseDropsCommentsAndProcInsts(t *testing.T) {
	doc := `<?xml version="1.0"?>
<!-- exported 2026-08-12 -->
<RSLogix5000Content><!-- vendor note --><?vendor hint?><Controller Name="C"/></RSLogix5000Content>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	assert.Equal(t, "Controller", root.Children[0].Name)
	assert.Empty(t, root.Text)

	out, err := Marshal(root)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "vendor")
	assert.NotContains(t, string(out), "<!--")
}

func TestParseRejectsTrailingContent(t *testing.T) {
	_, err := Parse(strings.NewReader("<RSLogix5000Content/><RSLogix5000Content/>"))
	require.Error(t, err)
	assert.True(t, IsStructural(err))
}
