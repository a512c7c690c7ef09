package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maja42/cember/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into a fresh directory, so that no cember.toml or .env is picked up.
func chdir(t *testing.T) string {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/resources/fonts", "src/resources/icons"}, opts.InputDirs)
	assert.Equal(t, "build/builtin_resources.c", opts.OutputSource)
	assert.Equal(t, "build/builtin_resources.h", opts.OutputHeader)
	assert.Equal(t, embedding.StripOne, opts.Strip)
	assert.Equal(t, embedding.SymlinksFiles, opts.Symlinks)
}

func TestLoad_File(t *testing.T) {
	dir := chdir(t)
	content := `
input_dirs = ["assets/fonts", "/abs/icons"]
output_source = "gen/res.c"
output_header = "gen/res.h"
guard = "RES_H"
strip = "all"
symlinks = "error"
log_level = "debug"
`
	path := filepath.Join(dir, "conf", "cember.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "conf", "assets", "fonts"), "/abs/icons"}, cfg.InputDirs)
	assert.Equal(t, filepath.Join(dir, "conf", "gen", "res.c"), cfg.OutputSource)
	assert.Equal(t, "RES_H", cfg.Guard)
	assert.Equal(t, "debug", cfg.LogLevel)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, embedding.StripAll, opts.Strip)
	assert.Equal(t, embedding.SymlinksError, opts.Symlinks)
	assert.Equal(t, "RES_H", opts.Guard)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(`guard = "FROM_FILE"`), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "FROM_FILE", cfg.Guard)
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "c.toml")
	require.NoError(t, os.WriteFile(path, []byte(`input_dir = ["x"]`), 0644))

	_, err := Load(path)
	assert.EqualError(t, err, `config file "`+path+`": unknown key "input_dir"`)
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t)
	_, err := Load("nope.toml")
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	chdir(t)
	t.Setenv("CEMBER_INPUT_DIRS", "a"+string(os.PathListSeparator)+"b")
	t.Setenv("CEMBER_OUTPUT_HEADER", "out/assets.h")
	t.Setenv("CEMBER_STRIP", "all")
	t.Setenv("CEMBER_LOG_PRETTY", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.InputDirs)
	assert.Equal(t, "out/assets.h", cfg.OutputHeader)
	assert.Equal(t, "all", cfg.Strip)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CEMBER_GUARD=FROM_DOTENV\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("CEMBER_GUARD") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "FROM_DOTENV", cfg.Guard)
}

func TestLoad_InvalidEnv(t *testing.T) {
	chdir(t)
	t.Setenv("CEMBER_LOG_PRETTY", "maybe")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("CEMBER_LOG_PRETTY", "")
	t.Setenv("CEMBER_SYMLINKS", "follow")
	_, err = Load("")
	assert.EqualError(t, err, `unknown symlink policy "follow" (want files, skip or error)`)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "trace"
	assert.EqualError(t, cfg.Validate(), `unknown log level "trace"`)

	cfg = Default()
	cfg.Strip = "none"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.InputDirs = nil
	_, err := cfg.Options()
	assert.EqualError(t, err, "no input directories configured")
}

func TestLoad_FileKeepsDefaults(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "conf", "c.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`output_header = "res.h"`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().InputDirs, cfg.InputDirs)
	assert.Equal(t, Default().OutputSource, cfg.OutputSource)
	assert.Equal(t, filepath.Join(dir, "conf", "res.h"), cfg.OutputHeader)
}
