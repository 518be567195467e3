package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wallgrab"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .wallgrab configuration file.
// Everything in it is optional; unset values fall back to built-in
// defaults.
type File struct {
	// ArchiveURLTemplate overrides the built-in archive URL template.
	// It must contain a {period} placeholder.
	ArchiveURLTemplate string `yaml:"archiveURLTemplate,omitempty"`

	// Headers are custom HTTP headers sent with download requests.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Cookie is an HTTP cookie sent with download requests.
	// Format: "name=value" or "name1=value1; name2=value2".
	Cookie string `yaml:"cookie,omitempty"`

	// Selectors override the built-in selector policy. Any field left
	// unset keeps its default, so a file can tweak a single strategy.
	Selectors SelectorPolicy `yaml:"selectors,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Headers == nil {
		f.Headers = make(map[string]string)
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in order:
// 1. The explicit path, if given
// 2. .wallgrab in the current directory
// 3. .wallgrab in the user's home directory
//
// Returns the path found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
