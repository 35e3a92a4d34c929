// Package config loads the optional prebake.toml that supplies defaults for
// the CLI flags: where to write the bake file, what tag crossover targets
// get, and which paths are left out of the discovered build files.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	ignore "github.com/sabhiram/go-gitignore"
)

const fileName = "prebake.toml"

// Config is the decoded contents of prebake.toml, merged over Default.
type Config struct {
	Out    string   `toml:"out,omitempty"`
	Tag    string   `toml:"tag,omitempty"`
	Ignore []string `toml:"ignore,omitempty"`

	// UnusedKeys names any top-level keys in prebake.toml this version of
	// the tool does not recognize, formatted for a warning log line.
	UnusedKeys string

	dirPath string
}

// Default returns the configuration used when no prebake.toml is present.
func Default() *Config {
	return &Config{
		Out: "docker-bake.hcl",
		Tag: "prebake",
	}
}

// Load reads prebake.toml from dir if present, overlaying its fields onto
// Default. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.dirPath = dir

	path := filepath.Join(dir, fileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		cfg.UnusedKeys = ParseUndecodedKeys(undecoded)
	}

	return cfg, nil
}

// Matcher compiles the Ignore patterns into a path matcher. A nil *Config
// or an empty Ignore list yields a matcher that never matches.
func (c *Config) Matcher() (*ignore.GitIgnore, error) {
	if c == nil || len(c.Ignore) == 0 {
		return ignore.CompileIgnoreLines(), nil
	}
	return ignore.CompileIgnoreLines(c.Ignore...), nil
}

// Path returns the directory this configuration was loaded from.
func (c *Config) Path() string {
	return c.dirPath
}
