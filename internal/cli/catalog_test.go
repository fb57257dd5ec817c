package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/ingot/internal/store"
)

func TestCatalogCommand(t *testing.T) {
	_, _, catalogDir := writeFixtures(t)

	out, err := execute(t, "catalog", catalogDir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 definition(s) valid")
}

func TestCatalogCommandViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.cue"),
		"module: Nameless: {controls_type: \"Ethernet\"}\n")

	out, err := execute(t, "catalog", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "C101")
}

func TestCatalogCommandJSONViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.cue"),
		"module: Nameless: {controls_type: \"Ethernet\"}\n")

	out, err := execute(t, "--format", "json", "catalog", dir)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
}

func TestCatalogCommandImport(t *testing.T) {
	_, _, catalogDir := writeFixtures(t)
	db := filepath.Join(t.TempDir(), "ingot.db")

	out, err := execute(t, "catalog", catalogDir, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	def, err := st.GetDefinition(context.Background(), "1756-EN2T")
	require.NoError(t, err)
	assert.Equal(t, "Enet", def.Label)
}

func TestCatalogCommandMissingDir(t *testing.T) {
	_, err := execute(t, "catalog", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogCommandIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.cue"), enetConfig)
	writeFile(t, filepath.Join(dir, "bad.cue"),
		"module: Nameless: {controls_type: \"Ethernet\"}\n")

	out, err := execute(t, "catalog", dir)
	require.Error(t, err)
	assert.Contains(t, out, "1 definition(s) still compiled")
}
