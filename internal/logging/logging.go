// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Attribute keys shared by every watcher log line.
const (
	KeyComponent = "component"
	KeyNode      = "node"
)

// Options is the logging part of the CLI flags.
type Options struct {
	Level  string // debug | info | warn | error
	Format string // text | json
	Out    io.Writer
}

// Setup installs the process-wide default logger.
// Unknown levels or formats are rejected rather than silently defaulted.
func Setup(o Options) error {
	level, err := ParseLevel(o.Level)
	if err != nil {
		return err
	}

	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(o.Format) {
	case "", "text":
		h = slog.NewTextHandler(out, hopts)
	case "json":
		h = slog.NewJSONHandler(out, hopts)
	default:
		return fmt.Errorf("logging: unknown format %q", o.Format)
	}

	slog.SetDefault(slog.New(h))
	return nil
}

// Component returns the default logger tagged with a component name.
func Component(name string) *slog.Logger {
	return slog.Default().With(slog.String(KeyComponent, name))
}

// ForNode scopes l to one managed node. A nil l means the default logger.
func ForNode(l *slog.Logger, nodeID string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With(slog.String(KeyNode, nodeID))
}

// ParseLevel maps a flag value onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}
