package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shython/internal/diagfmt"
	"shython/internal/interp"
	"shython/internal/script"
	"shython/internal/trace"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [file.shy]",
		Short: "Execute a shython script",
		Long:  `Execute a shython script, optionally tracing every execution event it produces`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExecution,
	}
	cmd.Flags().Bool("trace", false, "install the execution tracer before the first statement")
	cmd.Flags().Bool("trace-inspect", true, "emit the per-event inspector block")
	cmd.Flags().Bool("trace-lines", true, "emit TRACE:shython_line records for line events")
	cmd.Flags().String("trace-output", "-", "trace output path ('-' for stdout)")
	cmd.Flags().Int("trace-ring-size", 0, "keep the last N events for a post-mortem dump (0 = off)")
	cmd.Flags().Int("max-steps", 0, "abort after N executed statements (0 = unlimited)")
	cmd.Flags().Int("max-depth", 64, "maximum call depth")
	return cmd
}

func runExecution(cmd *cobra.Command, args []string) error {
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	path, err := resolveScript(args, manifest)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	prog, err := script.Parse(path, src)
	if err != nil {
		var pe *script.ParseError
		if errors.As(err, &pe) {
			fmt.Fprint(cmd.ErrOrStderr(), diagfmt.ParseError(pe))
			os.Exit(1)
		}
		return err
	}

	maxSteps, err := cmd.Flags().GetInt("max-steps")
	if err != nil {
		return fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
	}

	in := interp.New(prog,
		interp.WithWriter(cmd.OutOrStdout()),
		interp.WithMaxSteps(maxSteps),
		interp.WithMaxDepth(maxDepth),
	)

	ts, err := setupTracing(cmd, manifest, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer ts.cleanup()

	if ts.hook != nil {
		trace.Install(in, ts.hook)
	}

	if runErr := in.Run(cmd.Context()); runErr != nil {
		var rt *interp.RuntimeError
		if errors.As(runErr, &rt) {
			fmt.Fprint(cmd.ErrOrStderr(), rt.Backtrace(path))
			if ts.ring != nil && ts.ring.Len() > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "last trace events:")
				_ = ts.ring.Dump(cmd.ErrOrStderr())
			}
			ts.cleanup()
			os.Exit(1)
		}
		return runErr
	}
	return nil
}

// resolveScript picks the script path from the argument or, when
// absent, the manifest's [run] main entry.
func resolveScript(args []string, manifest *projectManifest) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if manifest != nil && manifest.Config.Run.Main != "" {
		return filepath.Join(manifest.Root, manifest.Config.Run.Main), nil
	}
	return "", errors.New("no script given\nspecify one explicitly, e.g.:\n  shython run path/to/script.shy\nor set [run] main in shython.toml")
}
