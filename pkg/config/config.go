// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// AppName is the application identity the configuration location derives from.
const AppName = "git-site-clone"

const configFileName = "default-config.yml"

// ErrCorrupt is matched by every CorruptError.
var ErrCorrupt = errors.New("configuration is corrupt")

// CorruptError reports a configuration file that exists but cannot be read or decoded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("configuration %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Err}
}

type Config struct {
	Base     string            `yaml:"base"`
	Mappings map[string]string `yaml:"mappings"`
}

// NewConfig returns the configuration used before anything was persisted.
func NewConfig() *Config {
	return &Config{Mappings: map[string]string{}}
}

// SetBase sets the default base directory
func (c *Config) SetBase(base string) {
	c.Base = base
}

// AddMapping inserts or overwrites the root directory used for host
func (c *Config) AddMapping(host, path string) {
	if c.Mappings == nil {
		c.Mappings = map[string]string{}
	}
	c.Mappings[host] = path
}

// RemoveMapping deletes the mapping for host. Removing an unknown host is a no-op.
func (c *Config) RemoveMapping(host string) {
	delete(c.Mappings, host)
}

// Mapping returns the root directory configured for host, if any.
func (c *Config) Mapping(host string) (string, bool) {
	path, ok := c.Mappings[host]
	return path, ok
}

// Store persists a Config as YAML at a fixed location.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a Store backed by fs at path
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewDefaultStore creates a Store on the OS filesystem at DefaultPath
func NewDefaultStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStore(afero.NewOsFs(), path), nil
}

// DefaultPath returns the configuration file location following the
// operating system's conventions (XDG on Linux, Application Support on macOS,
// AppData on Windows).
func DefaultPath() (string, error) {
	if xdg.ConfigHome == "" {
		return "", errors.New("unable to determine the user configuration directory")
	}
	return filepath.Join(xdg.ConfigHome, AppName, configFileName), nil
}

// Path returns the location of the configuration file
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration. When no file exists yet, the default
// configuration is written and returned.
func (s *Store) Load() (*Config, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := NewConfig()
		if err := s.Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	if cfg.Mappings == nil {
		cfg.Mappings = map[string]string{}
	}

	return cfg, nil
}

// Save overwrites the configuration file with cfg
func (s *Store) Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// Raw returns the persisted configuration file contents as they are on disk,
// without decoding them. The default configuration is written first if no
// file exists yet.
func (s *Store) Raw() ([]byte, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat configuration: %w", err)
	}
	if !exists {
		if _, err := s.Load(); err != nil {
			return nil, err
		}
	}
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return data, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %s: %w", path, err)
	}
	return expanded, nil
}
