// Package config loads the startup configuration of the file server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/f4ah6o/webserve-go/internal/mimetype"
)

// DefaultPort is the TCP port used when nothing else is configured.
const DefaultPort = 8080

// Config holds everything the server needs at startup.
// The zero value is not usable; start from Default.
type Config struct {
	// Addr is the TCP address to listen on (e.g. ":8080" for all interfaces).
	Addr string `toml:"addr" yaml:"addr"`
	// Root is the directory files are served from.
	Root string `toml:"root" yaml:"root"`
	// Types are extra Content-Type overrides, checked after the built-in ones.
	Types []mimetype.Override `toml:"types" yaml:"types"`
}

// Default returns the configuration used when no file or flags are given:
// every interface on port 8080, serving the working directory.
func Default() Config {
	return Config{
		Addr: fmt.Sprintf(":%d", DefaultPort),
		Root: ".",
	}
}

// Load reads a TOML or YAML file on top of Default.
// The format is chosen by the file extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}

	return cfg, nil
}

// Validate checks that the root is a directory and that every extra
// override is well formed.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is empty")
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("invalid root %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", c.Root)
	}

	for i, o := range c.Types {
		if !strings.HasPrefix(o.Suffix, ".") || len(o.Suffix) < 2 {
			return fmt.Errorf("types[%d]: suffix %q must start with '.'", i, o.Suffix)
		}
		parts := strings.SplitN(o.ContentType, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("types[%d]: content type %q is not of the form type/subtype", i, o.ContentType)
		}
	}

	return nil
}
