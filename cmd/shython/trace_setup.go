package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shython/internal/trace"
)

// traceSetup is the resolved tracer wiring for one run: the composed
// hook to install, the optional post-mortem ring, and a cleanup that
// closes any file the trace stream was routed to.
type traceSetup struct {
	hook    trace.Func
	ring    *trace.Ring
	cleanup func()
}

// setupTracing reads the trace flags, layers them over the project
// manifest defaults, and builds the dispatcher. Returns a setup with a
// nil hook when tracing is off.
func setupTracing(cmd *cobra.Command, manifest *projectManifest, stdout io.Writer) (*traceSetup, error) {
	flags := cmd.Flags()

	enabled, err := flags.GetBool("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	inspect, err := flags.GetBool("trace-inspect")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-inspect flag: %w", err)
	}
	lines, err := flags.GetBool("trace-lines")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-lines flag: %w", err)
	}
	outputPath, err := flags.GetString("trace-output")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-output flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	// Manifest defaults apply wherever the flag was not given explicitly.
	if manifest != nil {
		tc := manifest.Config.Trace
		if !flags.Changed("trace") && tc.Enabled != nil {
			enabled = *tc.Enabled
		}
		if !flags.Changed("trace-inspect") && tc.Inspect != nil {
			inspect = *tc.Inspect
		}
		if !flags.Changed("trace-lines") && tc.Lines != nil {
			lines = *tc.Lines
		}
		if !flags.Changed("trace-output") && tc.Output != "" {
			outputPath = tc.Output
		}
		if !flags.Changed("trace-ring-size") && tc.RingSize > 0 {
			ringSize = tc.RingSize
		}
	}

	if !enabled {
		return &traceSetup{cleanup: func() {}}, nil
	}

	out := stdout
	var closer io.Closer
	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		out = f
		closer = f
	}
	cleanup := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}

	ts := &traceSetup{cleanup: cleanup}
	ts.hook = trace.New(trace.Config{Inspect: inspect, Lines: lines, Output: out})
	if ringSize > 0 {
		ts.ring = trace.NewRing(ringSize)
		ts.hook = trace.Chain(ts.hook, ts.ring.Trace)
	}
	if ts.hook == nil {
		return ts, nil
	}

	// The original tool announces itself on the trace stream before
	// installing the hook.
	fmt.Fprintln(out, "TRACING")
	return ts, nil
}
