package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plcforge/ingot/internal/catalog"
	"github.com/plcforge/ingot/internal/plc"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func enetDefinition() *catalog.Definition {
	return &catalog.Definition{
		Label:         "Enet",
		CatalogNumber: "1756-EN2T",
		ControlsType:  plc.ControlsEthernet,
		TagTemplates: []catalog.TagTemplate{
			{Name: "{{module.name}}_CommOk", DataType: "BOOL"},
		},
		ConnectionPoints: []catalog.ConnectionSpec{
			{Name: "Standard", InputSize: 12, OutputSize: 4},
		},
	}
}

func TestOpenAppliesPragmasAndVersion(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.verifyPragma("journal_mode", "wal"))
	require.NoError(t, s.verifyPragma("foreign_keys", "1"))

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
}

func TestDefinitionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def := enetDefinition()
	require.NoError(t, s.PutDefinition(ctx, def))

	got, err := s.GetDefinition(ctx, "1756-EN2T")
	require.NoError(t, err)
	assert.Equal(t, def, got)

	// Upsert replaces the record.
	def.ControlsType = plc.ControlsEthernetSwitch
	require.NoError(t, s.PutDefinition(ctx, def))
	got, err = s.GetDefinition(ctx, "1756-EN2T")
	require.NoError(t, err)
	assert.Equal(t, plc.ControlsEthernetSwitch, got.ControlsType)

	_, err = s.GetDefinition(ctx, "1756-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRegistryFromStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutDefinition(ctx, enetDefinition()))
	require.NoError(t, s.PutDefinition(ctx, &catalog.Definition{
		Label:         "Plc",
		CatalogNumber: "1756-L83ES",
		ControlsType:  plc.ControlsPLC,
	}))

	reg, err := s.LoadRegistry(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	require.NotNil(t, reg.Lookup("1756-EN2T"))
	assert.Equal(t, plc.ControlsEthernet, reg.Lookup("1756-EN2T").ControlsType)
}

func TestIngestHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seen, err := s.SeenFingerprint(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, s.RecordIngest(ctx, Ingest{
		RunID:       "run-1",
		Controller:  "Line4",
		Variant:     "Filler",
		Score:       0.8,
		Fingerprint: "abc123",
	}))
	require.NoError(t, s.RecordIngest(ctx, Ingest{
		RunID:       "run-2",
		Controller:  "Line4",
		Variant:     "Filler",
		Score:       0.8,
		Fingerprint: "abc123",
	}))

	// Duplicate run IDs are rejected.
	assert.Error(t, s.RecordIngest(ctx, Ingest{RunID: "run-1", Fingerprint: "x"}))

	seen, err = s.SeenFingerprint(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, seen)

	history, err := s.IngestsByFingerprint(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "run-2", history[0].RunID)
	assert.Equal(t, "run-1", history[1].RunID)
	assert.NotEmpty(t, history[0].LoadedAt)
}
