package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brain-sim/antmaze/pkg/document"
	"github.com/brain-sim/antmaze/pkg/errors"
)

// validateCommand creates the validate command for checking maze documents.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate maze documents",
		Long: `Validate one or more maze documents.

Each file is parsed and frozen, which runs the full consistency check:
grid shapes, element tokens and values, hub geometry, level structure and
connector placement. The command prints a per-file result and exits
non-zero if any document fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, paths []string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Validating %d document(s)...", len(paths)))
	if len(paths) > 1 {
		spinner.Start()
	}

	type result struct {
		path string
		err  error
	}
	results := make([]result, 0, len(paths))
	failed := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}
		_, err := document.Import(path)
		if err != nil {
			failed++
		}
		results = append(results, result{path: path, err: err})
	}
	spinner.Stop()

	for _, r := range results {
		if r.err == nil {
			printSuccess("%s", r.path)
			continue
		}
		if code := errors.GetCode(r.err); code != "" {
			printError("%s  %s", r.path, StyleDim.Render(string(code)))
			fmt.Println("  " + StyleDim.Render(errors.UserMessage(r.err)))
		} else {
			printError("%s  %v", r.path, r.err)
		}
	}

	prog.done(fmt.Sprintf("Validated %d document(s), %d failed", len(paths), failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed validation", failed, len(paths))
	}
	return nil
}
