package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/plcforge/ingot/internal/catalog"
	"github.com/plcforge/ingot/internal/classify"
	"github.com/plcforge/ingot/internal/pipeline"
	"github.com/plcforge/ingot/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Catalog     string
	Descriptors string
	Threshold   float64
	Database    string
}

// LoadSummary is the load command's result payload.
type LoadSummary struct {
	RunID       string   `json:"run_id"`
	Controller  string   `json:"controller"`
	Variant     string   `json:"variant"`
	Score       float64  `json:"score"`
	Fingerprint string   `json:"fingerprint"`
	Programs    int      `json:"programs"`
	Modules     int      `json:"modules"`
	Tags        int      `json:"tags"`
	Dangling    int      `json:"dangling"`
	Shadowed    []string `json:"shadowed,omitempty"`
	SeenBefore  bool     `json:"seen_before,omitempty"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <project.l5x>",
		Short: "Ingest a project export and classify it",
		Long: `Ingest an RSLogix L5X project export: parse the document, build the
controller graph, match hardware modules against the catalog, and
classify the controller.

With --db, the load is recorded and repeated loads of a byte-identical
project are reported via the canonical fingerprint.

Example:
  ingot load ./line4.l5x --catalog ./catalog
  ingot load ./line4.l5x --descriptors ./descriptors.yaml --db ./ingot.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "module-definition config directory")
	cmd.Flags().StringVar(&opts.Descriptors, "descriptors", "", "classification descriptor YAML file")
	cmd.Flags().Float64Var(&opts.Threshold, "threshold", 0, "classification acceptance threshold (0 = default)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for recording loads")

	return cmd
}

func runLoad(opts *LoadOptions, project string, cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(project)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read project", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
	}

	catalogReg, err := loadCatalog(ctx, opts, st, formatter)
	if err != nil {
		return err
	}

	factory, err := buildFactory(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load descriptors", err)
	}

	p := pipeline.New(
		pipeline.WithCatalog(catalogReg),
		pipeline.WithFactory(factory),
		pipeline.WithLogger(logger),
	)

	result, err := p.Load(ctx, data)
	if err != nil {
		_ = formatter.Error("L001", err.Error(), nil)
		return WrapExitError(ExitFailure, "load failed", err)
	}

	c := result.Variant.Controller
	summary := LoadSummary{
		RunID:       result.RunID,
		Controller:  c.Name,
		Variant:     result.Variant.ID,
		Score:       result.Variant.Score,
		Fingerprint: result.Fingerprint,
		Programs:    len(c.Programs()),
		Modules:     len(c.Modules()),
		Tags:        len(c.Tags()),
		Dangling:    len(c.DanglingRefs()),
		Shadowed:    c.ShadowedTags(),
	}

	if st != nil {
		seen, err := st.SeenFingerprint(ctx, result.Fingerprint)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to query database", err)
		}
		summary.SeenBefore = seen
		err = st.RecordIngest(ctx, store.Ingest{
			RunID:       result.RunID,
			Controller:  c.Name,
			Variant:     result.Variant.ID,
			Score:       result.Variant.Score,
			Fingerprint: result.Fingerprint,
		})
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record load", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Controller %s classified as %s (score %.2f)\n",
		summary.Controller, summary.Variant, summary.Score)
	fmt.Fprintf(w, "  programs: %d  modules: %d  tags: %d  dangling: %d\n",
		summary.Programs, summary.Modules, summary.Tags, summary.Dangling)
	for _, shadow := range summary.Shadowed {
		fmt.Fprintf(w, "  shadowed: %s\n", shadow)
	}
	fmt.Fprintf(w, "  fingerprint: %s\n", summary.Fingerprint)
	if summary.SeenBefore {
		fmt.Fprintln(w, "  identical project loaded before")
	}
	return nil
}

// loadCatalog assembles the module-definition registry: stored
// definitions first when a database is open, then config files.
func loadCatalog(ctx context.Context, opts *LoadOptions, st *store.Store,
	formatter *OutputFormatter) (*catalog.Registry, error) {
	if opts.Catalog == "" && st == nil {
		return nil, nil
	}

	reg := catalog.NewRegistry()
	if st != nil {
		stored, err := st.ListDefinitions(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load stored catalog", err)
		}
		for _, def := range stored {
			if err := reg.Register(def); err != nil {
				return nil, WrapExitError(ExitCommandError, "stored catalog invalid", err)
			}
		}
		formatter.VerboseLog("loaded %d stored definition(s)", len(stored))
	}

	if opts.Catalog != "" {
		loaded, err := reg.LoadDir(opts.Catalog)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read catalog dir", err)
		}
		if len(loaded.Errors) > 0 {
			for _, cerr := range loaded.Errors {
				_ = formatter.Error("C100", cerr.Error(), nil)
			}
			return nil, NewExitError(ExitFailure,
				fmt.Sprintf("catalog config failed with %d error(s)", len(loaded.Errors)))
		}
		formatter.VerboseLog("loaded %d definition(s) from %s", len(loaded.Loaded), opts.Catalog)
	}
	return reg, nil
}

func buildFactory(opts *LoadOptions) (*classify.Factory, error) {
	reg := classify.DefaultRegistry()
	if opts.Descriptors != "" {
		loaded, err := LoadDescriptors(opts.Descriptors)
		if err != nil {
			return nil, err
		}
		reg = loaded
	}
	var factoryOpts []classify.Option
	if opts.Threshold > 0 {
		factoryOpts = append(factoryOpts, classify.WithThreshold(opts.Threshold))
	}
	return classify.NewFactory(reg, factoryOpts...), nil
}
