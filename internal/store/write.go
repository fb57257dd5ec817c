package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plcforge/ingot/internal/catalog"
)

// PutDefinition inserts or replaces a compiled definition. The full
// record is stored as JSON alongside the indexed columns.
func (s *Store) PutDefinition(ctx context.Context, def *catalog.Definition) error {
	if def == nil || def.CatalogNumber == "" {
		return fmt.Errorf("store: definition requires a catalog number")
	}
	body, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("store: marshal definition %q: %w", def.CatalogNumber, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO definitions (catalog_number, label, controls_type, body, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(catalog_number) DO UPDATE SET
			label = excluded.label,
			controls_type = excluded.controls_type,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, def.CatalogNumber, def.Label, string(def.ControlsType), string(body))
	if err != nil {
		return fmt.Errorf("store: put definition %q: %w", def.CatalogNumber, err)
	}
	return nil
}

// Ingest is one recorded pipeline load.
type Ingest struct {
	RunID       string
	Controller  string
	Variant     string
	Score       float64
	Fingerprint string
	LoadedAt    string
}

// RecordIngest appends a load record. Run IDs are unique; recording
// the same run twice is an error.
func (s *Store) RecordIngest(ctx context.Context, in Ingest) error {
	if in.RunID == "" {
		return fmt.Errorf("store: ingest requires a run ID")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingests (run_id, controller, variant, score, fingerprint)
		VALUES (?, ?, ?, ?, ?)
	`, in.RunID, in.Controller, in.Variant, in.Score, in.Fingerprint)
	if err != nil {
		return fmt.Errorf("store: record ingest %q: %w", in.RunID, err)
	}
	return nil
}
