package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mixerProject = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<RSLogix5000Content TargetName="Mixer01">
  <Controller Name="Mixer01">
    <Modules>
      <Module Name="Mix_ENet" CatalogNumber="1756-EN2T" ParentModule="Local">
        <Connections>
          <Connection Name="Standard" InputSize="8" OutputSize="2"/>
        </Connections>
      </Module>
    </Modules>
    <Tags>
      <Tag Name="Mix_Speed" TagType="Base" DataType="DINT"/>
    </Tags>
    <Programs>
      <Program Name="Mix_Main" MainRoutineName="Main">
        <Routines>
          <Routine Name="Main" Type="RLL">
            <RLLContent>
              <Rung Number="0" Type="N">
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

const mixerDescriptors = `descriptors:
  - id: Mixer
    modules: ["Mix_*"]
    programs: ["Mix_*"]
    tags: ["Mix_*"]
`

const enetConfig = `module: Enet: {
	catalog_number: "1756-EN2T"
	controls_type:  "Ethernet"
	connection_points: [{
		name:        "Standard"
		input_size:  8
		output_size: 2
	}]
}
`

// writeFixtures lays out a project file, a descriptor config, and a
// catalog dir in a temp directory.
func writeFixtures(t *testing.T) (project, descriptors, catalogDir string) {
	t.Helper()
	dir := t.TempDir()

	project = filepath.Join(dir, "mixer.l5x")
	require.NoError(t, os.WriteFile(project, []byte(mixerProject), 0o644))

	descriptors = filepath.Join(dir, "descriptors.yaml")
	require.NoError(t, os.WriteFile(descriptors, []byte(mixerDescriptors), 0o644))

	catalogDir = filepath.Join(dir, "catalog")
	require.NoError(t, os.Mkdir(catalogDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(catalogDir, "enet.cue"), []byte(enetConfig), 0o644))
	return project, descriptors, catalogDir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// execute runs the root command with args, capturing stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
