package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/plcforge/ingot/internal/plc"
)

// Registry holds compiled module definitions keyed by catalog number.
// Registration is mutex-serialized; lookups are read-mostly and safe
// for concurrent use with registration.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
	ids  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]*Definition{}}
}

// Register adds a validated definition. A definition that fails
// Validate is rejected with its first violation; a catalog number
// collision is rejected with C106.
func (r *Registry) Register(def *Definition) error {
	if errs := Validate(def); len(errs) > 0 {
		return errs[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.CatalogNumber]; exists {
		return ValidationError{
			Field:   "catalog_number",
			Message: fmt.Sprintf("catalog number %q already registered", def.CatalogNumber),
			Code:    ErrDuplicateCatalog,
		}
	}
	r.defs[def.CatalogNumber] = def
	r.ids = append(r.ids, def.CatalogNumber)
	return nil
}

// Lookup returns the definition for a catalog number, nil if absent.
func (r *Registry) Lookup(catalogNumber string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs[catalogNumber]
}

// Match finds the definition a concrete hardware module satisfies,
// checking connection points as well as the catalog number. Nil when
// no registered definition matches.
func (r *Registry) Match(m *plc.Module) *Definition {
	if m == nil {
		return nil
	}
	r.mu.RLock()
	def := r.defs[m.CatalogNumber]
	r.mu.RUnlock()
	if def != nil && def.Matches(m) {
		return def
	}
	return nil
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// CatalogNumbers returns the registered catalog numbers sorted.
func (r *Registry) CatalogNumbers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	sort.Strings(out)
	return out
}

// LoadResult reports a directory load. Errors are per-record: a bad
// file or record never blocks the rest of the directory.
type LoadResult struct {
	Loaded []*Definition
	Errors []error
}

// LoadDir compiles, validates, and registers every .cue and .json
// config file in dir. The returned error covers only an unreadable
// directory; everything else lands in the result's error list.
func (r *Registry) LoadDir(dir string) (LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("catalog: read config dir: %w", err)
	}

	cuectx := cuecontext.New()
	var result LoadResult
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".cue" && ext != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}

		v := cuectx.CompileBytes(data, cue.Filename(path))
		defs, errs := CompileConfig(v)
		for _, err := range errs {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name(), err))
		}
		for _, def := range defs {
			if errs := Validate(def); len(errs) > 0 {
				for _, verr := range errs {
					result.Errors = append(result.Errors,
						fmt.Errorf("%s: module %q: %w", entry.Name(), def.Label, verr))
				}
				continue
			}
			if err := r.Register(def); err != nil {
				result.Errors = append(result.Errors,
					fmt.Errorf("%s: module %q: %w", entry.Name(), def.Label, err))
				continue
			}
			result.Loaded = append(result.Loaded, def)
		}
	}
	return result, nil
}
