package config

import (
	"io"
	"log/slog"
)

// NewLoggerForTest is exported for testing
func NewLoggerForTest(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	return newLogger(w, level, format)
}

var ParseLevel = parseLevel

// SetBackend sets the repository backend for testing
func (r *Repository) SetBackend(backend string) {
	r.backend = backend
}

// SetPath sets the catalog path for testing
func (c *Catalog) SetPath(path string) {
	c.path = path
}
