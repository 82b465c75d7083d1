// Package logging builds the charmbracelet loggers used across the hub.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultFile is where interactive sessions log while the TUI owns the terminal.
const DefaultFile = "~/.arcade/hub.log"

// New returns a timestamped logger writing to w with the given prefix.
// An unknown level falls back to info.
func New(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

// OpenFile opens path for appending, creating parent directories and
// expanding a leading ~. The caller closes the file.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		path = DefaultFile
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("logging: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}
