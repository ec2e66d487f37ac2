package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"shython/internal/diagfmt"
	"shython/internal/script"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.shy...>",
		Short: "Parse scripts without executing them",
		Long:  `Check shython scripts for syntax errors; files are checked concurrently`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 4, "number of files checked concurrently")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 1 {
		jobs = 1
	}

	var (
		mu       sync.Mutex
		failures int
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for _, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if _, err := script.Parse(path, src); err != nil {
				var pe *script.ParseError
				if !errors.As(err, &pe) {
					return err
				}
				mu.Lock()
				fmt.Fprint(cmd.ErrOrStderr(), diagfmt.ParseError(pe))
				failures++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(args))
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files\n", len(args))
	}
	return nil
}
