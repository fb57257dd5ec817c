package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundtripCommand(t *testing.T) {
	project, _, _ := writeFixtures(t)

	out, err := execute(t, "roundtrip", project)
	require.NoError(t, err)
	assert.Contains(t, out, "byte-identical")
	assert.NotContains(t, out, "layout differs")
}

func TestRoundtripCommandUnnormalizedInput(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "sprawl.l5x")
	// Same document with four-space indentation. It still round-trips,
	// but the input is not already in the normalized layout.
	writeFile(t, project, strings.ReplaceAll(mixerProject, "  ", "    "))

	out, err := execute(t, "roundtrip", project)
	require.NoError(t, err)
	assert.Contains(t, out, "byte-identical")
	assert.Contains(t, out, "layout differs")
}

func TestRoundtripCommandWritesNormalized(t *testing.T) {
	project, _, _ := writeFixtures(t)
	normalized := filepath.Join(t.TempDir(), "normalized.l5x")

	_, err := execute(t, "roundtrip", project, "-o", normalized)
	require.NoError(t, err)

	got, err := os.ReadFile(normalized)
	require.NoError(t, err)
	assert.Equal(t, mixerProject, string(got))
}

func TestRoundtripCommandMalformed(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "broken.l5x")
	writeFile(t, project, "<RSLogix5000Content>")

	_, err := execute(t, "roundtrip", project)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
