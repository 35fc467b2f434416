// Package model defines the data structures shared by the expander and the CLI.
package model

// Path represents a file system path.
type Path string

// File represents a Rust source file on disk.
type File struct {
	FullPath  Path
	ShortPath Path
	// Hash is the SHA-256 of the content last read, hex encoded.
	Hash string
}

// Source is one candidate input for expansion.
type Source struct {
	Origin *File
}

// FileResult holds the outcome of expanding a single source file.
type FileResult struct {
	Source     Source
	Original   []byte
	Expanded   []byte
	Expansions []Expansion
}

// Changed reports whether expansion produced any difference.
func (r FileResult) Changed() bool {
	return len(r.Expansions) > 0
}
