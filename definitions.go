// Package cember reads the C artifacts produced by the cember generator.
//
// The generator (see package embedding and cmd/cember) converts resource files
// into a definitions artifact holding one byte array per resource,
// and a declarations artifact (header) with matching extern declarations.
// This package parses them back, which is used to verify generated output.
package cember

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/maja42/cember/internal"
)

// maxLineLength bounds a single line of a definitions artifact.
// Generated lines are much shorter, except for very long symbol names.
const maxLineLength = 1024 * 1024

// Definitions represent the byte arrays of a generated definitions artifact.
type Definitions struct {
	names []string
	data  map[string][]byte
}

// Open parses the definitions artifact at path.
func Open(path string) (*Definitions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse parses a definitions artifact.
func Parse(r io.Reader) (*Definitions, error) {
	defs := &Definitions{
		data: make(map[string][]byte),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return scanner.Text(), true
	}

	line, ok := next()
	if !ok || !isMarker(line) {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, newParseErr(lineNo, "not generated by cember (marker not found)")
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		name, ok := internal.ParseArrayStart(line)
		if !ok {
			return nil, newParseErr(lineNo, "unexpected content %q", line)
		}
		if _, exists := defs.data[name]; exists {
			return nil, newParseErr(lineNo, "duplicate definition of %q", name)
		}

		// array body
		var data []byte
		for {
			line, ok := next()
			if !ok {
				return nil, newParseErr(lineNo, "unterminated array %q", name)
			}
			if internal.IsArrayEnd(line) {
				break
			}
			b, err := internal.ParseHexLine(line)
			if err != nil {
				return nil, newParseErr(lineNo, "array %q: %s", name, err)
			}
			data = append(data, b...)
		}

		// size constant
		line, ok = next()
		for ok && line == "" {
			line, ok = next()
		}
		if !ok {
			return nil, newParseErr(lineNo, "missing size constant of %q", name)
		}
		size, err := internal.ParseSizeLine(line, name)
		if err != nil {
			return nil, newParseErr(lineNo, "%s", err)
		}
		if size >= 0 && size != int64(len(data)) {
			return nil, newParseErr(lineNo, "size constant of %q is %d, array has %d bytes", name, size, len(data))
		}

		if data == nil {
			data = []byte{}
		}
		defs.names = append(defs.names, name)
		defs.data[name] = data
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}

// List returns the names of all arrays, in definition order.
func (d *Definitions) List() []string {
	if len(d.names) == 0 { // no arrays
		return nil
	}
	l := make([]string, len(d.names))
	copy(l, d.names)
	return l
}

// Count returns the number of arrays.
func (d *Definitions) Count() int {
	return len(d.names)
}

// Reader groups basic methods available on array contents.
type Reader interface {
	io.ReadSeeker
	io.ReaderAt
	Size() int64
}

// Reader returns a reader for a given array.
// Returns nil if no array with that name exists.
func (d *Definitions) Reader(name string) Reader {
	data, ok := d.data[name]
	if !ok {
		return nil
	}
	return bytes.NewReader(data)
}

// Bytes returns the content of a specific array.
// Returns nil if no array with that name exists.
// The returned slice must not be modified.
func (d *Definitions) Bytes(name string) []byte {
	return d.data[name]
}

// Size returns the size of a specific array in bytes.
// Returns zero if no array with that name exists.
func (d *Definitions) Size(name string) int64 {
	return int64(len(d.data[name]))
}
