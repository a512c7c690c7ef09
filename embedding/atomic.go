package embedding

import (
	"bufio"
	"os"
	"path/filepath"
)

// atomicFile collects output in a temporary file next to the target.
// The target is replaced by Commit; Discard removes the temporary file.
type atomicFile struct {
	target string
	tmp    *os.File
	w      *bufio.Writer
	done   bool
}

func createAtomic(target string) (*atomicFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &WriteError{Path: target, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, &WriteError{Path: target, Err: err}
	}
	return &atomicFile{
		target: target,
		tmp:    tmp,
		w:      bufio.NewWriterSize(tmp, 64*1024),
	}, nil
}

func (f *atomicFile) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, &WriteError{Path: f.target, Err: err}
	}
	return n, nil
}

// Commit flushes the output and moves it to the target path.
func (f *atomicFile) Commit() error {
	if err := f.w.Flush(); err != nil {
		return &WriteError{Path: f.target, Err: err}
	}
	if err := f.tmp.Chmod(0644); err != nil {
		return &WriteError{Path: f.target, Err: err}
	}
	if err := f.tmp.Close(); err != nil {
		return &WriteError{Path: f.target, Err: err}
	}
	if err := os.Rename(f.tmp.Name(), f.target); err != nil {
		return &WriteError{Path: f.target, Err: err}
	}
	f.done = true
	return nil
}

// Discard removes the temporary file, unless the output was committed.
func (f *atomicFile) Discard() {
	if f.done {
		return
	}
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
	f.done = true
}
