// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library so configuration and log files can live on the OS or, in tests, in memory.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// Fs returns the raw backend, for libraries that take an afero.Fs.
func Fs() afero.Fs {
	return backend.Fs
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing and CI environments.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
