package cember

import (
	"strings"

	"github.com/maja42/cember/internal"
)

// Marker identifies artifacts written by this version of the generator.
// Artifacts without marker are rejected by Parse and ParseHeader.
const Marker = internal.Marker

// isMarker reports whether line is the marker line of a generated artifact.
func isMarker(line string) bool {
	return strings.TrimSpace(line) == internal.MarkerLine
}
