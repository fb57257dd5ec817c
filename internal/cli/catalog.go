package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plcforge/ingot/internal/catalog"
	"github.com/plcforge/ingot/internal/store"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Database string
}

// CatalogResult holds the catalog command's result payload.
type CatalogResult struct {
	Valid    bool     `json:"valid"`
	Loaded   []string `json:"loaded,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Imported int      `json:"imported,omitempty"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog <configs-dir>",
		Short: "Compile and validate module-definition configs",
		Long: `Compile every CUE or JSON module-definition config in a directory and
report violations per record. Records fail independently: one bad
definition never blocks the rest of the directory.

With --db, definitions that pass validation are imported into the
SQLite catalog store.

Example:
  ingot catalog ./catalog
  ingot catalog ./catalog --db ./ingot.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database to import definitions into")

	return cmd
}

func runCatalog(opts *CatalogOptions, configDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg := catalog.NewRegistry()
	loaded, err := reg.LoadDir(configDir)
	if err != nil {
		_ = formatter.Error("C100", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read config dir", err)
	}

	result := CatalogResult{Valid: len(loaded.Errors) == 0}
	for _, def := range loaded.Loaded {
		result.Loaded = append(result.Loaded, def.CatalogNumber)
		formatter.VerboseLog("compiled %s (%s)", def.CatalogNumber, def.Label)
	}
	for _, cerr := range loaded.Errors {
		result.Errors = append(result.Errors, cerr.Error())
	}

	if opts.Database != "" && len(loaded.Loaded) > 0 {
		imported, err := importDefinitions(cmd.Context(), opts.Database, loaded.Loaded)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to import definitions", err)
		}
		result.Imported = imported
	}

	if len(loaded.Errors) > 0 {
		return outputCatalogErrors(formatter, result)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d definition(s) valid\n", len(result.Loaded))
	if result.Imported > 0 {
		fmt.Fprintf(formatter.Writer, "  imported %d into %s\n", result.Imported, opts.Database)
	}
	return nil
}

func importDefinitions(ctx context.Context, dbPath string, defs []*catalog.Definition) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	for i, def := range defs {
		if err := st.PutDefinition(ctx, def); err != nil {
			return i, err
		}
	}
	return len(defs), nil
}

func outputCatalogErrors(formatter *OutputFormatter, result CatalogResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    "C100",
				Message: result.Errors[0],
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure,
			fmt.Sprintf("catalog failed with %d error(s)", len(result.Errors)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Catalog validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, msg := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s\n", msg)
	}
	if len(result.Loaded) > 0 {
		fmt.Fprintf(formatter.Writer, "\n%d definition(s) still compiled\n", len(result.Loaded))
	}
	return NewExitError(ExitFailure,
		fmt.Sprintf("catalog failed with %d error(s)", len(result.Errors)))
}
