package converter

import "fmt"

// UsageError reports a wrong invocation. It is raised before any I/O happens.
type UsageError struct {
	// Usage is the synopsis shown to the user.
	Usage string
}

func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

// ReadError reports that the input file could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports that the output file could not be written.
// No partial output is left at Path when it is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IdentifierError reports a filename from which no symbol name can be formed.
type IdentifierError struct {
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("cannot derive an identifier from %q", e.Name)
}
