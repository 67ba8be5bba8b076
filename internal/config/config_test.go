package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultGlob, cfg.Glob)
	require.Equal(t, DefaultOutputExt, cfg.Ext)
	require.False(t, cfg.Strict)
	require.False(t, cfg.Lenient)
}

func TestLoadMergesYAMLOverFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "djt2ast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("glob: \"**/*.djt\"\nstrict: true\n"), 0o644))

	cfg := Default()
	cfg.In = "templates"
	require.NoError(t, cfg.Load(path))

	require.Equal(t, "**/*.djt", cfg.Glob)
	require.True(t, cfg.Strict)
	// values the file does not set keep their flag-bound values
	require.Equal(t, "templates", cfg.In)
	require.Equal(t, DefaultOutputExt, cfg.Ext)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Load(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestValidateRequiresInput(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadExtension(t *testing.T) {
	cfg := Default()
	cfg.In = t.TempDir()
	cfg.Ext = "json"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsStrictWithLenient(t *testing.T) {
	cfg := Default()
	cfg.In = t.TempDir()
	cfg.Strict = true
	cfg.Lenient = true
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.html")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := Default()
	cfg.In = file
	require.Error(t, cfg.Validate())
}

func TestValidateFillsEmptyDefaults(t *testing.T) {
	cfg := Config{In: t.TempDir()}
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultGlob, cfg.Glob)
	require.Equal(t, DefaultOutputExt, cfg.Ext)
}
