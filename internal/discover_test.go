package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given files (relative path --> content) below root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.png":           "b",
		"a.ttf":           "a",
		"sub/c.bin":       "c",
		"sub/deep/er/d.x": "d",
		"empty.dat":       "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "emptydir"), 0755))

	files, err := Walk(root, SymlinksFiles)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.ttf"),
		filepath.Join(root, "b.png"),
		filepath.Join(root, "empty.dat"),
		filepath.Join(root, "sub", "c.bin"),
		filepath.Join(root, "sub", "deep", "er", "d.x"),
	}, files)
}

func TestWalk_missingDir(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), SymlinksFiles)
	assert.True(t, os.IsNotExist(err))
}

func TestWalk_notADir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file": "x"})

	_, err := Walk(filepath.Join(root, "file"), SymlinksFiles)
	assert.True(t, errors.Is(err, ErrNotDir))
}

func symlinkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"target/inner.bin": "i",
		"res/real.bin":     "r",
		"outside.bin":      "o",
	})
	if err := os.Symlink(filepath.Join(root, "outside.bin"), filepath.Join(root, "res", "file-link.bin")); err != nil {
		t.Skipf("symlinks not supported: %s", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "res", "dir-link")))
	return root
}

func TestWalk_symlinksFiles(t *testing.T) {
	root := symlinkTree(t)
	res := filepath.Join(root, "res")

	files, err := Walk(res, SymlinksFiles)
	require.NoError(t, err)
	// linked files are included, linked directories are not descended
	assert.Equal(t, []string{
		filepath.Join(res, "file-link.bin"),
		filepath.Join(res, "real.bin"),
	}, files)
}

func TestWalk_symlinksSkip(t *testing.T) {
	root := symlinkTree(t)
	res := filepath.Join(root, "res")

	files, err := Walk(res, SymlinksSkip)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(res, "real.bin")}, files)
}

func TestWalk_symlinksError(t *testing.T) {
	root := symlinkTree(t)

	_, err := Walk(filepath.Join(root, "res"), SymlinksError)
	assert.True(t, errors.Is(err, ErrSymlink))
}

func TestWalk_danglingSymlink(t *testing.T) {
	root := t.TempDir()
	if err := os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")); err != nil {
		t.Skipf("symlinks not supported: %s", err)
	}
	_, err := Walk(root, SymlinksFiles)
	assert.True(t, os.IsNotExist(err))

	files, err := Walk(root, SymlinksSkip)
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalk_linkedRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real/a.bin": "a"})
	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Skipf("symlinks not supported: %s", err)
	}

	files, err := Walk(link, SymlinksFiles)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(link, "a.bin")}, files)
}

func TestParseSymlinkPolicy(t *testing.T) {
	for _, p := range []SymlinkPolicy{SymlinksFiles, SymlinksSkip, SymlinksError} {
		parsed, err := ParseSymlinkPolicy(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParseSymlinkPolicy("follow")
	assert.EqualError(t, err, `unknown symlink policy "follow" (want files, skip or error)`)
}

func TestCommonAncestor(t *testing.T) {
	root := t.TempDir()
	fonts := filepath.Join(root, "res", "fonts")
	icons := filepath.Join(root, "res", "icons")
	icons2 := filepath.Join(root, "res", "icons2")

	base, err := CommonAncestor([]string{fonts, icons})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "res"), base)

	base, err = CommonAncestor([]string{icons, icons2})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "res"), base)

	base, err = CommonAncestor([]string{fonts})
	assert.NoError(t, err)
	assert.Equal(t, fonts, base)

	base, err = CommonAncestor([]string{fonts, filepath.Join(fonts, "bold")})
	assert.NoError(t, err)
	assert.Equal(t, fonts, base)

	_, err = CommonAncestor(nil)
	assert.Error(t, err)
}

func TestCommonAncestor_relative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	base, err := CommonAncestor([]string{"src/resources/fonts", "src/resources/icons"})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "src", "resources"), base)
}
