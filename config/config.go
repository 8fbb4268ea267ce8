// Package config handles vrapper.toml tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up when no path is given.
const FileName = "vrapper.toml"

// Config represents a vrapper.toml file.
type Config struct {
	// Classpath entries: directories, jars, or a directory ending in "*"
	// for all jars in it. Relative entries are resolved against Dir.
	Classpath []string `toml:"classpath"`

	// Bootstrap appends stand-ins for the platform classes.
	Bootstrap bool `toml:"bootstrap"`

	// SkipUnresolvable skips methods that refer to classes missing from
	// the classpath.
	SkipUnresolvable bool `toml:"skip-unresolvable"`

	Verbosity int    `toml:"verbosity"`
	LogFile   string `toml:"log-file"`

	Output Output `toml:"output"`

	// Dir is the directory containing the file (set at load time).
	Dir string `toml:"-"`
}

// Output configures where generated sources go.
type Output struct {
	// Dir receives one .java file per generated class, laid out by
	// package. Empty means standard output.
	Dir string `toml:"dir"`
}

func Default() *Config {
	return &Config{Bootstrap: true, Dir: "."}
}

// Load reads the configuration at path, or vrapper.toml in the current
// directory when path is empty. A missing vrapper.toml yields the defaults,
// a missing explicit path is an error. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	implicit := path == ""
	if implicit {
		path = FileName
	}
	c := Default()

	data, err := os.ReadFile(path)
	if implicit && errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// ClasspathPaths returns the classpath entries resolved against Dir. An
// entry holding a path list is split first, so each path in it resolves
// against Dir too.
func (c *Config) ClasspathPaths() []string {
	paths := make([]string, 0, len(c.Classpath))
	for _, entry := range c.Classpath {
		for _, path := range filepath.SplitList(entry) {
			if filepath.IsAbs(path) {
				paths = append(paths, path)
			} else {
				paths = append(paths, filepath.Join(c.Dir, path))
			}
		}
	}
	return paths
}
