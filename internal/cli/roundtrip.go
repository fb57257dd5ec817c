package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plcforge/ingot/internal/l5x"
)

// RoundtripResult holds the roundtrip command's result payload.
type RoundtripResult struct {
	Identical  bool `json:"identical"`
	Normalized bool `json:"normalized"`
	InputBytes int  `json:"input_bytes"`
}

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(rootOpts *RootOptions) *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "roundtrip <project.l5x>",
		Short: "Verify a project survives parse and serialize",
		Long: `Parse a project export, serialize it back, and reparse the result.
The second serialization must reproduce the first byte for byte.

"normalized" reports whether the input already matched the serialized
layout exactly. An input that parses but differs in layout (whitespace,
attribute formatting) still passes the round trip.

Example:
  ingot roundtrip ./line4.l5x
  ingot roundtrip ./line4.l5x -o normalized.l5x`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(rootOpts, args[0], write, cmd)
		},
	}

	cmd.Flags().StringVarP(&write, "output", "o", "", "write the normalized serialization to a file")

	return cmd
}

func runRoundtrip(opts *RootOptions, project, write string, cmd *cobra.Command) error {
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

	root, err := l5x.ParseBytes(data)
	if err != nil {
		_ = formatter.Error("L001", err.Error(), nil)
		return WrapExitError(ExitFailure, "parse failed", err)
	}
	first, err := l5x.Marshal(root)
	if err != nil {
		return WrapExitError(ExitFailure, "serialize failed", err)
	}

	reparsed, err := l5x.ParseBytes(first)
	if err != nil {
		_ = formatter.Error("L002", err.Error(), nil)
		return WrapExitError(ExitFailure, "reparse failed", err)
	}
	second, err := l5x.Marshal(reparsed)
	if err != nil {
		return WrapExitError(ExitFailure, "second serialize failed", err)
	}

	result := RoundtripResult{
		Identical:  bytes.Equal(first, second),
		Normalized: bytes.Equal(data, first),
		InputBytes: len(data),
	}

	if write != "" {
		if err := os.WriteFile(write, first, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	}

	if !result.Identical {
		_ = formatter.Error("L003", "serialization is not a fixed point", result)
		return NewExitError(ExitFailure, "round trip is not byte-identical")
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, "✓ Round trip is byte-identical")
	if !result.Normalized {
		fmt.Fprintln(formatter.Writer, "  input layout differs from the normalized serialization")
	}
	return nil
}
