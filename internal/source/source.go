// Package source reads the full text a command operates on, from a named
// file or from standard input.
package source

import (
	"fmt"
	"io"
)

// Reader resolves the contents behind a source.
type Reader interface {
	// ReadAll consumes the reader's input to completion.
	ReadAll() (string, error)
}

// StdinReader reads the whole of an input stream, typically os.Stdin.
type StdinReader struct {
	In io.Reader
}

// ReadAll consumes the stream to EOF.
func (r StdinReader) ReadAll() (string, error) {
	data, err := io.ReadAll(r.In)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
