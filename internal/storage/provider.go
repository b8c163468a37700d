// Package storage defines the read-only view of a markdown vault on disk.
package storage

import "time"

// Document describes one markdown file in the vault.
type Document struct {
	// Path is relative to the vault root, using the OS separator.
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider lists and reads vault files.
type Provider interface {
	// List returns every .md file under dir (relative to the vault root),
	// in lexical path order.
	List(dir string) ([]Document, error)
	// Read returns the raw bytes of the file at path (relative to the vault root).
	Read(path string) ([]byte, error)
	// Root returns the absolute vault directory.
	Root() string
}
