package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/plcforge/ingot/internal/catalog"
	"github.com/plcforge/ingot/internal/classify"
	"github.com/plcforge/ingot/internal/l5x"
	"github.com/plcforge/ingot/internal/pipeline"
	"github.com/plcforge/ingot/internal/plc"
)

// Result carries everything a scenario run produced.
type Result struct {
	RunID       string
	Variant     *classify.Variant
	Fingerprint string

	// Serialized is the normalized serialization of the loaded graph.
	Serialized []byte

	// RoundTripOK reports whether reparsing Serialized and marshaling
	// again reproduced it byte for byte.
	RoundTripOK bool
}

// Controller is the loaded graph.
func (r *Result) Controller() *plc.Controller { return r.Variant.Controller }

// Run executes a scenario end to end: catalog load, descriptor
// registration, pipeline load, serialization, round-trip check.
func Run(s *Scenario) (*Result, error) {
	data, err := os.ReadFile(s.resolve(s.Input))
	if err != nil {
		return nil, fmt.Errorf("harness: read input: %w", err)
	}

	var catalogReg *catalog.Registry
	if s.Catalog != "" {
		catalogReg = catalog.NewRegistry()
		loaded, err := catalogReg.LoadDir(s.resolve(s.Catalog))
		if err != nil {
			return nil, err
		}
		if len(loaded.Errors) > 0 {
			return nil, fmt.Errorf("harness: catalog config: %w", loaded.Errors[0])
		}
	}

	classifyReg := classify.NewRegistry()
	for _, d := range s.Descriptors {
		err := classifyReg.Register(classify.Descriptor{
			ID:             d.ID,
			Datatypes:      d.Datatypes,
			Modules:        d.Modules,
			Programs:       d.Programs,
			SafetyPrograms: d.SafetyPrograms,
			Tags:           d.Tags,
		})
		if err != nil {
			return nil, err
		}
	}

	var opts []classify.Option
	if s.Threshold > 0 {
		opts = append(opts, classify.WithThreshold(s.Threshold))
	}

	p := pipeline.New(
		pipeline.WithCatalog(catalogReg),
		pipeline.WithFactory(classify.NewFactory(classifyReg, opts...)),
		pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	loaded, err := p.Load(context.Background(), data)
	if err != nil {
		return nil, err
	}

	serialized, err := l5x.Marshal(loaded.Variant.Controller.Source)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       loaded.RunID,
		Variant:     loaded.Variant,
		Fingerprint: loaded.Fingerprint,
		Serialized:  serialized,
	}

	reparsed, err := l5x.ParseBytes(serialized)
	if err == nil {
		second, err := l5x.Marshal(reparsed)
		result.RoundTripOK = err == nil && bytes.Equal(serialized, second)
	}

	return result, nil
}

// Check evaluates the scenario's expectations against a result,
// returning every mismatch rather than stopping at the first.
func Check(s *Scenario, r *Result) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	exp := s.Expect
	if exp.Variant != "" && r.Variant.ID != exp.Variant {
		fail("variant: got %q, want %q", r.Variant.ID, exp.Variant)
	}
	if exp.Score != nil && math.Abs(r.Variant.Score-*exp.Score) > 1e-9 {
		fail("score: got %.2f, want %.2f", r.Variant.Score, *exp.Score)
	}

	c := r.Controller()
	if exp.Controller != "" && c.Name != exp.Controller {
		fail("controller: got %q, want %q", c.Name, exp.Controller)
	}
	for _, name := range exp.Programs {
		if c.Program(name) == nil {
			fail("program %q missing from graph", name)
		}
	}
	if exp.Dangling != nil && len(c.DanglingRefs()) != *exp.Dangling {
		fail("dangling refs: got %d, want %d", len(c.DanglingRefs()), *exp.Dangling)
	}
	for _, want := range exp.Shadowed {
		found := false
		for _, got := range c.ShadowedTags() {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			fail("shadow record %q missing", want)
		}
	}
	if exp.RoundTrip && !r.RoundTripOK {
		fail("round trip is not byte-identical")
	}
	return errs
}
