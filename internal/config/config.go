package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGlob      = "**/*.html"
	DefaultOutputExt = ".ast.json"
)

// Config stores runtime options for one check run.
type Config struct {
	In   string `yaml:"in"`
	Out  string `yaml:"out"`
	Glob string `yaml:"glob"`
	Ext  string `yaml:"ext"`

	ReportJSON string `yaml:"report_json"`
	ReportCSV  string `yaml:"report_csv"`

	Strict  bool `yaml:"strict"`
	Lenient bool `yaml:"lenient"`
	Verbose bool `yaml:"verbose"`
}

// Default returns baseline configuration values used by CLI flags.
func Default() Config {
	return Config{
		Glob: DefaultGlob,
		Ext:  DefaultOutputExt,
	}
}

// Load merges a YAML config file over the receiver. Flags bound before the
// call keep their values unless the file sets them.
func (c *Config) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

// Validate normalizes and checks the configuration before execution.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.In) == "" {
		return fmt.Errorf("--in is required")
	}

	if strings.TrimSpace(c.Glob) == "" {
		c.Glob = DefaultGlob
	}
	if strings.TrimSpace(c.Ext) == "" {
		c.Ext = DefaultOutputExt
	}
	if !strings.HasPrefix(c.Ext, ".") {
		return fmt.Errorf("--ext must start with '.', got %q", c.Ext)
	}
	if c.Strict && c.Lenient {
		return fmt.Errorf("--strict and --lenient are mutually exclusive")
	}

	c.In = filepath.Clean(c.In)
	if c.Out != "" {
		c.Out = filepath.Clean(c.Out)
	}

	info, err := os.Stat(c.In)
	if err != nil {
		return fmt.Errorf("input path %q is not accessible: %w", c.In, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %q must be a directory", c.In)
	}

	return nil
}
