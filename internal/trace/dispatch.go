package trace

import (
	"io"
	"os"
)

// Config selects which dispatcher capabilities are active. The zero
// value is fully off; Default() reproduces the historical behavior of
// the tool (both capabilities on, stdout).
type Config struct {
	Inspect bool      // unconditional per-event inspector block
	Lines   bool      // TRACE:shython_line records for "line" events
	Output  io.Writer // shared output stream (nil = os.Stdout)
}

// Default returns the legacy both-on configuration.
func Default() Config {
	return Config{Inspect: true, Lines: true}
}

// New builds the composed trace callback for cfg. The inspector always
// runs before the line record for the same event. Returns nil when
// every capability is off, which installs as "no tracing".
func New(cfg Config) Func {
	if !cfg.Inspect && !cfg.Lines {
		return nil
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	w := NewLockedWriter(out)

	hooks := make([]Func, 0, 2)
	if cfg.Inspect {
		hooks = append(hooks, NewInspector(w).Trace)
	}
	if cfg.Lines {
		hooks = append(hooks, NewLineWriter(w).Trace)
	}
	return Chain(hooks...)
}
