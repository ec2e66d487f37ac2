package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shython/internal/logger"
	"shython/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shython",
		Short: "Python-flavored script interpreter with a built-in execution tracer",
		Long:  `shython runs small Python-flavored scripts and can trace every execution event they produce`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupCLI(cmd)
		},
		SilenceUsage: true,
	}
	root.Version = version.Version

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("verbose", false, "verbose diagnostics")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setupCLI applies the global flags before any command runs.
func setupCLI(cmd *cobra.Command) {
	root := cmd.Root()
	colorMode, _ := root.PersistentFlags().GetString("color")
	verbose, _ := root.PersistentFlags().GetBool("verbose")

	noColor := false
	switch colorMode {
	case "on":
	case "off":
		noColor = true
	default: // auto
		noColor = !isTerminal(os.Stdout)
	}
	color.NoColor = noColor
	logger.Init(verbose, noColor)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
