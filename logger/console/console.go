// SPDX-License-Identifier: MIT

// Package console is a logger.Backend on charmbracelet/log.
package console

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Params configures a Backend.
type Params struct {
	Debug  bool
	Prefix string
	// Output defaults to os.Stderr.
	Output io.Writer
	// NoTimestamp drops timestamps, for reproducible output.
	NoTimestamp bool
}

// Backend writes leveled, structured lines to a terminal.
type Backend struct {
	logger *log.Logger
}

// New returns a console backend.
func New(p Params) *Backend {
	level := log.InfoLevel
	if p.Debug {
		level = log.DebugLevel
	}
	out := p.Output
	if out == nil {
		out = os.Stderr
	}

	return &Backend{logger: log.NewWithOptions(out, log.Options{
		ReportTimestamp: !p.NoTimestamp,
		Level:           level,
		Prefix:          p.Prefix,
	})}
}

// Debug writes at DEBUG level.
func (b *Backend) Debug(message string, keyvals ...any) { b.logger.Debug(message, keyvals...) }

// Info writes at INFO level.
func (b *Backend) Info(message string, keyvals ...any) { b.logger.Info(message, keyvals...) }

// Warn writes at WARN level.
func (b *Backend) Warn(message string, keyvals ...any) { b.logger.Warn(message, keyvals...) }

// Error writes at ERROR level.
func (b *Backend) Error(message string, keyvals ...any) { b.logger.Error(message, keyvals...) }
