package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plcforge/ingot/internal/catalog"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// GetDefinition loads one definition by catalog number.
func (s *Store) GetDefinition(ctx context.Context, catalogNumber string) (*catalog.Definition, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM definitions WHERE catalog_number = ?`, catalogNumber,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get definition %q: %w", catalogNumber, err)
	}
	return decodeDefinition(body)
}

// ListDefinitions loads every stored definition ordered by catalog
// number.
func (s *Store) ListDefinitions(ctx context.Context) ([]*catalog.Definition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM definitions ORDER BY catalog_number`)
	if err != nil {
		return nil, fmt.Errorf("store: list definitions: %w", err)
	}
	defer rows.Close()

	var defs []*catalog.Definition
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("store: scan definition: %w", err)
		}
		def, err := decodeDefinition(body)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// LoadRegistry builds a catalog registry from every stored definition.
func (s *Store) LoadRegistry(ctx context.Context) (*catalog.Registry, error) {
	defs, err := s.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	reg := catalog.NewRegistry()
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return nil, fmt.Errorf("store: register %q: %w", def.CatalogNumber, err)
		}
	}
	return reg, nil
}

// IngestsByFingerprint returns prior loads of the identical project,
// newest first.
func (s *Store) IngestsByFingerprint(ctx context.Context, fingerprint string) ([]Ingest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, controller, variant, score, fingerprint, loaded_at
		FROM ingests WHERE fingerprint = ? ORDER BY id DESC
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("store: ingests by fingerprint: %w", err)
	}
	defer rows.Close()

	var out []Ingest
	for rows.Next() {
		var in Ingest
		if err := rows.Scan(&in.RunID, &in.Controller, &in.Variant,
			&in.Score, &in.Fingerprint, &in.LoadedAt); err != nil {
			return nil, fmt.Errorf("store: scan ingest: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// SeenFingerprint reports whether an identical project was loaded
// before.
func (s *Store) SeenFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ingests WHERE fingerprint = ?`, fingerprint,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: seen fingerprint: %w", err)
	}
	return n > 0, nil
}

func decodeDefinition(body string) (*catalog.Definition, error) {
	var def catalog.Definition
	if err := json.Unmarshal([]byte(body), &def); err != nil {
		return nil, fmt.Errorf("store: decode definition: %w", err)
	}
	return &def, nil
}
