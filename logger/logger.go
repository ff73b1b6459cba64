// SPDX-License-Identifier: MIT

// Package logger is the logging facade of linse. Library code logs through
// the package-level functions; the embedding application picks the backends
// with Init. Nothing is logged until Init is called.
package logger

import "sync"

// Backend is one logging sink. keyvals are alternating key/value pairs.
type Backend interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
}

var (
	mu       sync.RWMutex
	backends []Backend
)

// Init replaces the configured backends. Init() with no arguments silences
// the facade.
func Init(bs ...Backend) {
	mu.Lock()
	defer mu.Unlock()
	backends = append([]Backend(nil), bs...)
}

func each(fn func(Backend)) {
	mu.RLock()
	defer mu.RUnlock()
	for _, b := range backends {
		fn(b)
	}
}

// Debug writes message at DEBUG level to every backend.
func Debug(message string, keyvals ...any) {
	each(func(b Backend) { b.Debug(message, keyvals...) })
}

// Info writes message at INFO level to every backend.
func Info(message string, keyvals ...any) {
	each(func(b Backend) { b.Info(message, keyvals...) })
}

// Warn writes message at WARN level to every backend.
func Warn(message string, keyvals ...any) {
	each(func(b Backend) { b.Warn(message, keyvals...) })
}

// Error writes message at ERROR level to every backend.
func Error(message string, keyvals ...any) {
	each(func(b Backend) { b.Error(message, keyvals...) })
}
