package cember

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/maja42/cember/internal"
)

// Header represents a generated declarations artifact.
type Header struct {
	Guard  string   // include guard token
	Arrays []string // declared arrays, in declaration order
	Sizes  []string // declared size constants, in declaration order
}

// OpenHeader parses the declarations artifact at path.
func OpenHeader(path string) (*Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseHeader(file)
}

// ParseHeader parses a declarations artifact.
// The header must contain exactly one "#ifndef", "#define" and "#endif" line,
// and every declaration has to be placed within the guard.
func ParseHeader(r io.Reader) (*Header, error) {
	hdr := &Header{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var ifndef, define, endif int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if lineNo == 1 {
			if !isMarker(line) {
				return nil, newParseErr(lineNo, "not generated by cember (marker not found)")
			}
			continue
		}
		if line == "" {
			continue
		}
		if endif > 0 {
			return nil, newParseErr(lineNo, "content after closing guard")
		}

		if kind, token, ok := internal.ParseGuard(line); ok {
			switch kind {
			case "ifndef":
				if ifndef > 0 {
					return nil, newParseErr(lineNo, "duplicate #ifndef")
				}
				ifndef++
				hdr.Guard = token
			case "define":
				if ifndef == 0 || define > 0 || token != hdr.Guard {
					return nil, newParseErr(lineNo, "#define does not match #ifndef %q", hdr.Guard)
				}
				define++
			}
			continue
		}
		if internal.IsGuardEnd(line) {
			if define == 0 {
				return nil, newParseErr(lineNo, "#endif without guard")
			}
			endif++
			continue
		}

		symbol, array, ok := internal.ParseExtern(line)
		if !ok {
			return nil, newParseErr(lineNo, "unexpected content %q", line)
		}
		if define == 0 {
			return nil, newParseErr(lineNo, "declaration outside of include guard")
		}
		if array {
			hdr.Arrays = append(hdr.Arrays, symbol)
		} else {
			hdr.Sizes = append(hdr.Sizes, symbol)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lineNo == 0 {
		return nil, newParseErr(0, "not generated by cember (marker not found)")
	}
	if endif == 0 {
		return nil, newParseErr(lineNo, "missing include guard")
	}
	return hdr, nil
}
