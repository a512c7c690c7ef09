// Package embedding converts resource files into C byte-array definitions
// and matching extern declarations.
//
// A run has three strictly sequential stages:
// discovery of all files below the input directories,
// transcoding of each file into a named byte array,
// and serialization into a definitions artifact and a declarations artifact (header).
package embedding

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maja42/cember/internal"
)

// PrintlnFunc is used for logging the embedding progress.
type PrintlnFunc func(format string, args ...interface{})

// StripMode defines how many file extensions are removed from symbol names.
type StripMode = internal.StripMode

const (
	StripOne = internal.StripOne // "a.tar.gz" --> "a_tar"
	StripAll = internal.StripAll // "a.tar.gz" --> "a"
)

// SymlinkPolicy defines how symbolic links below input directories are handled.
type SymlinkPolicy = internal.SymlinkPolicy

const (
	SymlinksFiles = internal.SymlinksFiles // read linked files, do not descend into linked directories
	SymlinksSkip  = internal.SymlinksSkip  // ignore links
	SymlinksError = internal.SymlinksError // fail on links
)

// Options configure a generator run.
type Options struct {
	// InputDirs are searched recursively for resources.
	// Symbol names are relative to the deepest directory containing all of them.
	InputDirs []string
	// OutputSource receives the array definitions.
	OutputSource string
	// OutputHeader receives the extern declarations.
	OutputHeader string
	// Guard is the include guard token. Derived from OutputHeader if empty.
	Guard    string
	Strip    StripMode
	Symlinks SymlinkPolicy
	// Progress (optional) is called after each resource was read.
	Progress func(res Resource, done, total int)
}

// guard returns the include guard token to use.
func (o Options) guard() string {
	if o.Guard != "" {
		return o.Guard
	}
	return internal.GuardName(o.OutputHeader)
}

// Resource is a single transcoded resource file.
type Resource struct {
	Name string // Symbol name of the byte array
	Path string // Source file
	Data []byte // File content
}

// Size returns the number of bytes of the resource.
func (r Resource) Size() int {
	return len(r.Data)
}

// Collect discovers and reads all resources below the configured input directories.
//
// Resources are sorted by path, making the result independent of the order
// in which the file system lists directory entries.
// Collect fails if any symbol name is invalid or used twice,
// before reading the first file.
func Collect(opts Options, logger PrintlnFunc) ([]Resource, error) {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	if len(opts.InputDirs) == 0 {
		return nil, fmt.Errorf("no input directories")
	}

	toc, err := buildTOC(opts)
	if err != nil {
		return nil, err
	}
	logger("Discovered %d resources", len(toc))

	resources := make([]Resource, 0, len(toc))
	for i, entry := range toc {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			return nil, &ReadError{Path: entry.Path, Err: err}
		}
		res := Resource{
			Name: entry.Name,
			Path: entry.Path,
			Data: data,
		}
		logger("Adding %q as %s (%d bytes)", res.Path, res.Name, res.Size())
		resources = append(resources, res)

		if opts.Progress != nil {
			opts.Progress(res, i+1, len(toc))
		}
	}
	return resources, nil
}

// buildTOC returns the TOC (table-of-contents) of all resources, sorted by path.
func buildTOC(opts Options) (internal.TOC, error) {
	base, err := internal.CommonAncestor(opts.InputDirs)
	if err != nil {
		return nil, &DiscoveryError{Path: strings.Join(opts.InputDirs, string(os.PathListSeparator)), Err: err}
	}

	var paths []string
	for _, dir := range opts.InputDirs {
		files, err := internal.Walk(dir, opts.Symlinks)
		if err != nil {
			return nil, &DiscoveryError{Path: dir, Err: err}
		}
		paths = append(paths, files...)
	}
	sort.Strings(paths)

	toc := make(internal.TOC, 0, len(paths))
	for _, path := range paths {
		name, err := internal.SymbolName(base, path, opts.Strip)
		if err != nil {
			return nil, &DiscoveryError{Path: path, Err: err}
		}
		toc = append(toc, internal.Entry{
			Name: name,
			Path: path,
		})
	}
	if err := checkTOC(toc); err != nil {
		return nil, err
	}
	return toc, nil
}

// checkTOC ensures that every entry results in legal and unique C symbols.
func checkTOC(toc internal.TOC) error {
	for _, entry := range toc {
		if err := internal.ValidIdentifier(entry.Name); err != nil {
			return &InvalidIdentifierError{Path: entry.Path, Name: entry.Name, Reason: err.Error()}
		}
	}
	if collisions := toc.Collisions(); len(collisions) > 0 {
		c := collisions[0]
		return &NameCollisionError{
			Symbol: c.Symbol,
			Paths:  []string{c.First.Path, c.Second.Path},
		}
	}
	return nil
}

// Embed writes the definitions of all resources to src
// and the matching declarations, wrapped in the include guard, to hdr.
//
// logger (optional) is used to report the progress during embedding.
func Embed(src, hdr io.Writer, resources []Resource, guard string, logger PrintlnFunc) error {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	if err := internal.ValidIdentifier(guard); err != nil {
		return &InvalidIdentifierError{Name: guard, Reason: err.Error()}
	}
	toc := make(internal.TOC, len(resources))
	for i, res := range resources {
		toc[i] = internal.Entry{Name: res.Name, Path: res.Path}
	}
	if err := checkTOC(toc); err != nil {
		return err
	}

	// Definitions
	logger("Writing %d definitions", len(resources))
	if err := internal.WriteMarker(src); err != nil {
		return fmt.Errorf("write definitions: %w", err)
	}
	for _, res := range resources {
		if err := internal.WriteArray(src, res.Name, res.Data); err != nil {
			return fmt.Errorf("write array %q: %w", res.Name, err)
		}
	}

	// Declarations
	logger("Writing declarations (guard %s)", guard)
	if err := internal.WriteMarker(hdr); err != nil {
		return fmt.Errorf("write declarations: %w", err)
	}
	if err := internal.WriteGuardOpen(hdr, guard); err != nil {
		return fmt.Errorf("write declarations: %w", err)
	}
	for _, res := range resources {
		if err := internal.WriteExtern(hdr, res.Name); err != nil {
			return fmt.Errorf("write declaration %q: %w", res.Name, err)
		}
	}
	if err := internal.WriteGuardClose(hdr); err != nil {
		return fmt.Errorf("write declarations: %w", err)
	}
	return nil
}

// EmbedFiles runs the whole generator: the resources below opts.InputDirs
// are collected and written to opts.OutputSource and opts.OutputHeader.
//
// Output is written to temporary files which replace the targets only if
// the run succeeded. A failed run leaves existing artifacts untouched.
//
// See Collect and Embed for more information.
func EmbedFiles(opts Options, logger PrintlnFunc) error {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	if opts.OutputSource == "" || opts.OutputHeader == "" {
		return fmt.Errorf("output paths for definitions and declarations are required")
	}

	resources, err := Collect(opts, logger)
	if err != nil {
		return err
	}

	src, err := createAtomic(opts.OutputSource)
	if err != nil {
		return err
	}
	defer src.Discard()

	hdr, err := createAtomic(opts.OutputHeader)
	if err != nil {
		return err
	}
	defer hdr.Discard()

	if err := Embed(src, hdr, resources, opts.guard(), logger); err != nil {
		return err
	}
	if err := src.Commit(); err != nil {
		return err
	}
	if err := hdr.Commit(); err != nil {
		return err
	}
	logger("Finished %q and %q", opts.OutputSource, opts.OutputHeader)
	return nil
}
