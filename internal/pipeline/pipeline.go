package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/plcforge/ingot/internal/build"
	"github.com/plcforge/ingot/internal/catalog"
	"github.com/plcforge/ingot/internal/classify"
	"github.com/plcforge/ingot/internal/l5x"
)

// EventKind labels a phase-boundary event.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventPhase     EventKind = "phase"
	EventCompleted EventKind = "completed"
	EventFailed    EventKind = "failed"
)

// Event is delivered to observers at phase boundaries.
type Event struct {
	RunID string
	Kind  EventKind

	// Phase names the phase that just finished, for EventPhase.
	Phase string
	Seq   int
	Of    int

	// Err is set for EventFailed.
	Err error
}

// Observer receives pipeline events. Delivery is fire-and-forget on
// the calling goroutine; observers must not block.
type Observer func(Event)

// Result is one successful load.
type Result struct {
	RunID       string
	Variant     *classify.Variant
	Fingerprint string
}

// Pipeline runs the ingest-build-classify sequence. A single Pipeline
// is safe for concurrent loads; the registries behind it are read-only
// from the pipeline's perspective.
type Pipeline struct {
	catalog *catalog.Registry
	factory *classify.Factory
	logger  *slog.Logger

	mu        sync.RWMutex
	observers []Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCatalog supplies the module-definition registry the builder
// consults.
func WithCatalog(reg *catalog.Registry) Option {
	return func(p *Pipeline) { p.catalog = reg }
}

// WithFactory supplies the classification factory. Without one, every
// load yields the generic variant.
func WithFactory(f *classify.Factory) Option {
	return func(p *Pipeline) { p.factory = f }
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// New creates a pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.factory == nil {
		p.factory = classify.NewFactory(classify.NewRegistry())
	}
	return p
}

// Subscribe registers an observer for phase events.
func (p *Pipeline) Subscribe(obs Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, obs)
}

func (p *Pipeline) emit(ev Event) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()
	for _, obs := range observers {
		obs(ev)
	}
}

const phaseCount = 3

// Load runs one document through the pipeline: parse, build, classify.
// Each call is an independent run with its own ID.
func (p *Pipeline) Load(ctx context.Context, data []byte) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	logger.Info("load started", "bytes", len(data))
	p.emit(Event{RunID: runID, Kind: EventStarted})

	fail := func(phase string, err error) (*Result, error) {
		logger.Error("load failed", "phase", phase, "error", err)
		p.emit(Event{RunID: runID, Kind: EventFailed, Phase: phase, Err: err})
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail("parse", err)
	}
	root, err := l5x.ParseBytes(data)
	if err != nil {
		return fail("parse", err)
	}
	p.emit(Event{RunID: runID, Kind: EventPhase, Phase: "parse", Seq: 1, Of: phaseCount})

	if err := ctx.Err(); err != nil {
		return fail("build", err)
	}
	controller, err := build.Build(root, p.catalog)
	if err != nil {
		return fail("build", err)
	}
	logger.Info("graph built",
		"controller", controller.Name,
		"programs", len(controller.Programs()),
		"modules", len(controller.Modules()),
		"dangling", len(controller.DanglingRefs()))
	p.emit(Event{RunID: runID, Kind: EventPhase, Phase: "build", Seq: 2, Of: phaseCount})

	if err := ctx.Err(); err != nil {
		return fail("classify", err)
	}
	variant := p.factory.Classify(controller)
	logger.Info("classified", "variant", variant.ID, "score", variant.Score)
	p.emit(Event{RunID: runID, Kind: EventPhase, Phase: "classify", Seq: 3, Of: phaseCount})

	result := &Result{
		RunID:       runID,
		Variant:     variant,
		Fingerprint: controller.Fingerprint(),
	}
	logger.Info("load completed", "fingerprint", result.Fingerprint)
	p.emit(Event{RunID: runID, Kind: EventCompleted})
	return result, nil
}
