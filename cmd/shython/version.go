package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shython/internal/version"
)

func newVersionCmd() *cobra.Command {
	var showHash, showDate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show shython build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := strings.TrimSpace(version.Version)
			if v == "" {
				v = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shython %s\n", v)
			if showHash {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", valueOrUnknown(version.GitCommit))
			}
			if showDate {
				fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", valueOrUnknown(version.BuildDate))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&showDate, "date", false, "include build timestamp")
	return cmd
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
