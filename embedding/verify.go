package embedding

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/maja42/cember"
	"github.com/maja42/cember/internal"
)

// ErrOutdated is returned by Verify if the artifacts on disk do not match the resources.
var ErrOutdated = errors.New("generated output is out of date")

func outdated(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOutdated, fmt.Sprintf(format, args...))
}

// Verify checks that opts.OutputSource and opts.OutputHeader contain exactly
// what EmbedFiles would generate for the current resources.
// Nothing is written.
func Verify(opts Options, logger PrintlnFunc) error {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	resources, err := Collect(opts, logger)
	if err != nil {
		return err
	}

	defs, err := cember.Open(opts.OutputSource)
	if err != nil {
		return fmt.Errorf("open definitions %q: %w", opts.OutputSource, err)
	}
	hdr, err := cember.OpenHeader(opts.OutputHeader)
	if err != nil {
		return fmt.Errorf("open declarations %q: %w", opts.OutputHeader, err)
	}

	names := defs.List()
	if len(names) != len(resources) {
		return outdated("%q defines %d arrays, found %d resources", opts.OutputSource, len(names), len(resources))
	}
	for i, res := range resources {
		if names[i] != res.Name {
			return outdated("array #%d is %q, expected %q", i+1, names[i], res.Name)
		}
		if !bytes.Equal(defs.Bytes(res.Name), res.Data) {
			return outdated("array %q differs from %q", res.Name, res.Path)
		}
	}
	logger("Verified %d definitions", len(names))

	if guard := opts.guard(); hdr.Guard != guard {
		return outdated("include guard is %q, expected %q", hdr.Guard, guard)
	}
	sizes := make([]string, len(names))
	for i, name := range names {
		sizes[i] = internal.SizeSymbol(name)
	}
	if !slices.Equal(hdr.Arrays, names) || !slices.Equal(hdr.Sizes, sizes) {
		return outdated("declarations in %q do not match the definitions", opts.OutputHeader)
	}
	logger("Verified declarations")
	return nil
}
