package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCommand(t *testing.T) {
	project, descriptors, catalogDir := writeFixtures(t)

	out, err := execute(t, "load", project,
		"--descriptors", descriptors, "--catalog", catalogDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Mixer01")
	assert.Contains(t, out, "classified as Mixer")
	assert.Contains(t, out, "fingerprint:")
}

func TestLoadCommandJSON(t *testing.T) {
	project, descriptors, _ := writeFixtures(t)

	out, err := execute(t, "--format", "json", "load", project,
		"--descriptors", descriptors)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var summary LoadSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, "Mixer01", summary.Controller)
	assert.Equal(t, "Mixer", summary.Variant)
	assert.InDelta(t, 0.6, summary.Score, 1e-9)
	assert.NotEmpty(t, summary.Fingerprint)
	assert.Equal(t, 1, summary.Programs)
}

func TestLoadCommandWithoutDescriptors(t *testing.T) {
	project, _, _ := writeFixtures(t)

	out, err := execute(t, "load", project)
	require.NoError(t, err)
	assert.Contains(t, out, "classified as Generic")
}

func TestLoadCommandRecordsFingerprint(t *testing.T) {
	project, descriptors, _ := writeFixtures(t)
	db := filepath.Join(t.TempDir(), "ingot.db")

	out, err := execute(t, "load", project, "--descriptors", descriptors, "--db", db)
	require.NoError(t, err)
	assert.NotContains(t, out, "loaded before")

	out, err = execute(t, "load", project, "--descriptors", descriptors, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "identical project loaded before")
}

func TestLoadCommandMissingProject(t *testing.T) {
	_, err := execute(t, "load", filepath.Join(t.TempDir(), "missing.l5x"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadCommandMalformedProject(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "broken.l5x")
	writeFile(t, project, "<RSLogix5000Content><Controller></RSLogix5000Content>")

	_, err := execute(t, "load", project)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestLoadDescriptorsErrors(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "empty.yaml")
	writeFile(t, path, "descriptors: []\n")
	_, err := LoadDescriptors(path)
	assert.ErrorContains(t, err, "no descriptors")

	path = filepath.Join(dir, "badglob.yaml")
	writeFile(t, path, "descriptors:\n  - id: Bad\n    tags: [\"[unterminated\"]\n")
	_, err = LoadDescriptors(path)
	assert.Error(t, err)

	_, err = LoadDescriptors(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read descriptors")
}
