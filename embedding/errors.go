package embedding

import (
	"fmt"
	"strings"
)

// DiscoveryError reports an input directory that does not exist or cannot be traversed.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover %q: %s", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ReadError reports a resource file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read resource %q: %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// NameCollisionError reports resources that map onto the same C symbol.
type NameCollisionError struct {
	Symbol string
	Paths  []string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("symbol %q is emitted by multiple resources: %s", e.Symbol, strings.Join(quote(e.Paths), ", "))
}

// InvalidIdentifierError reports a derived name that is not a legal C identifier.
// Path is empty if the name was not derived from a resource (e.g. the include guard).
type InvalidIdentifierError struct {
	Path   string
	Name   string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid identifier %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("resource %q: invalid identifier %q: %s", e.Path, e.Name, e.Reason)
}

// WriteError reports a failure while writing an output artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func quote(s []string) []string {
	q := make([]string, len(s))
	for i, v := range s {
		q[i] = fmt.Sprintf("%q", v)
	}
	return q
}
