package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up next to the executable when no path is given.
const DefaultFileName = "config.yaml"

// Store reads the custom tools configuration file.
type Store struct {
	path string
}

// NewStore creates a store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns config.yaml in the executable's directory.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(filepath.Dir(exe), DefaultFileName)
}

// Path returns the file the store reads.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration. A missing file yields an empty config.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	}

	return cfg, nil
}

// Save writes the configuration, choosing the format from the extension.
func (s *Store) Save(cfg Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
