package classify

import (
	"github.com/plcforge/ingot/internal/plc"
)

// GenericID is the variant ID used when no descriptor clears the
// acceptance threshold.
const GenericID = "Generic"

// DefaultThreshold is the minimum score a descriptor must reach to
// claim a controller.
const DefaultThreshold = 0.3

// Variant is the classification result for one controller.
type Variant struct {
	// ID is the winning descriptor's ID, or GenericID.
	ID string

	// Score is the winning score. For the generic variant it is the
	// best score seen, which was below the threshold.
	Score float64

	// Controller is the classified graph.
	Controller *plc.Controller
}

// IsGeneric reports whether classification fell through to the
// generic variant.
func (v *Variant) IsGeneric() bool { return v.ID == GenericID }

// CategoryScore is one descriptor's score, reported for diagnostics.
type CategoryScore struct {
	ID    string
	Score float64
}

// Factory classifies controllers against a descriptor registry.
type Factory struct {
	reg       *Registry
	threshold float64
}

// Option configures a Factory.
type Option func(*Factory)

// WithThreshold overrides the acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(f *Factory) { f.threshold = threshold }
}

// NewFactory creates a factory over the given registry.
func NewFactory(reg *Registry, opts ...Option) *Factory {
	f := &Factory{reg: reg, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Threshold returns the acceptance threshold in effect.
func (f *Factory) Threshold() float64 { return f.threshold }

// Classify scores every registered descriptor against the controller
// and returns the variant for the strictly highest score. Ties keep
// the earliest-registered descriptor. A best score below the threshold
// returns the generic variant; classification never fails.
func (f *Factory) Classify(c *plc.Controller) *Variant {
	bestID := GenericID
	bestScore := 0.0
	for _, m := range f.reg.snapshot() {
		score := m.Score(c)
		if score > bestScore {
			bestScore = score
			bestID = m.desc.ID
		}
	}
	if bestScore < f.threshold {
		return &Variant{ID: GenericID, Score: bestScore, Controller: c}
	}
	return &Variant{ID: bestID, Score: bestScore, Controller: c}
}

// Scores reports every descriptor's score in registration order.
func (f *Factory) Scores(c *plc.Controller) []CategoryScore {
	matchers := f.reg.snapshot()
	out := make([]CategoryScore, 0, len(matchers))
	for _, m := range matchers {
		out = append(out, CategoryScore{ID: m.desc.ID, Score: m.Score(c)})
	}
	return out
}
