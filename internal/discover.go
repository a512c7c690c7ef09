package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SymlinkPolicy defines how symbolic links below an input directory are treated.
type SymlinkPolicy int

const (
	// SymlinksFiles includes links to regular files (read through the link)
	// but does not descend into linked directories.
	SymlinksFiles SymlinkPolicy = iota
	// SymlinksSkip ignores all symbolic links.
	SymlinksSkip
	// SymlinksError fails discovery as soon as a symbolic link is found.
	SymlinksError
)

var symlinkPolicyNames = map[SymlinkPolicy]string{
	SymlinksFiles: "files",
	SymlinksSkip:  "skip",
	SymlinksError: "error",
}

func (p SymlinkPolicy) String() string {
	if s, ok := symlinkPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("SymlinkPolicy(%d)", int(p))
}

// ParseSymlinkPolicy parses "files", "skip" or "error".
func ParseSymlinkPolicy(s string) (SymlinkPolicy, error) {
	for p, name := range symlinkPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown symlink policy %q (want files, skip or error)", s)
}

var (
	// ErrNotDir is returned if an input path exists but is not a directory.
	ErrNotDir = errors.New("not a directory")
	// ErrSymlink is returned for links found while using SymlinksError.
	ErrSymlink = errors.New("symbolic link not allowed")
)

// Walk returns all regular files below dir, recursively.
// Paths are rooted in dir as given (not resolved), in lexical order.
// Non-regular files (devices, sockets, pipes) are ignored.
func Walk(dir string, policy SymlinkPolicy) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "walk", Path: dir, Err: ErrNotDir}
	}

	// WalkDir does not descend into a root that is itself a link,
	// so walk the link target and map every path back onto dir.
	root := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		root = resolved
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.Join(dir, rel)

		switch {
		case d.IsDir():
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			include, err := followLink(name, policy)
			if err != nil {
				return err
			}
			if include {
				files = append(files, name)
			}
		case d.Type().IsRegular():
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// followLink decides whether a symbolic link becomes part of the resource set.
func followLink(path string, policy SymlinkPolicy) (bool, error) {
	switch policy {
	case SymlinksSkip:
		return false, nil
	case SymlinksError:
		return false, &os.PathError{Op: "walk", Path: path, Err: ErrSymlink}
	}
	info, err := os.Stat(path)
	if err != nil { // dangling link
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// CommonAncestor returns the deepest absolute directory containing all given directories.
// The comparison is done on path components, not on characters,
// meaning "/res/icons" and "/res/icons2" share "/res".
func CommonAncestor(dirs []string) (string, error) {
	if len(dirs) == 0 {
		return "", errors.New("no directories given")
	}
	sep := string(filepath.Separator)

	var volume string
	var common []string
	for i, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		vol := filepath.VolumeName(abs)
		parts := strings.Split(strings.TrimPrefix(abs[len(vol):], sep), sep)

		if i == 0 {
			volume, common = vol, parts
			continue
		}
		if vol != volume {
			return "", fmt.Errorf("%q and %q are on different volumes", dirs[0], dir)
		}
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	return volume + sep + filepath.Join(common...), nil
}
