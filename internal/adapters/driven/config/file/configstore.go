package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/config"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
)

// Defaults for NewConfigStore.
const (
	DefaultDirName   = ".sheetrows"
	DefaultEnvPrefix = "SHEETROWS"
	configFileName   = "config.toml"
	envFileName      = ".env"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML,
// overlaid with environment variables.
type ConfigStore struct {
	mu        sync.RWMutex
	filePath  string
	envPrefix string
	envFiles  []string
	data      map[string]any
	dotenv    map[string]string
}

// Option configures a ConfigStore.
type Option func(*ConfigStore)

// WithEnvPrefix sets the prefix of overriding environment variables.
// An empty prefix disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(s *ConfigStore) {
		s.envPrefix = prefix
	}
}

// WithEnvFiles adds .env files to read overrides from. Earlier files win.
// Missing files are ignored.
func WithEnvFiles(paths ...string) Option {
	return func(s *ConfigStore) {
		s.envFiles = append(s.envFiles, paths...)
	}
}

// NewConfigStore creates a new TOML-based config store in configDir.
// If configDir is empty, defaults to ~/.sheetrows. The directory's own
// .env file is always consulted after any added with WithEnvFiles.
func NewConfigStore(configDir string, opts ...Option) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath:  filepath.Join(configDir, configFileName),
		envPrefix: DefaultEnvPrefix,
		data:      make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.envFiles = append(s.envFiles, filepath.Join(configDir, envFileName))

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key. Environment overrides are
// returned as strings.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.envPrefix != "" {
		name := config.EnvName(s.envPrefix, key)
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		if v, ok := s.dotenv[name]; ok {
			return v, true
		}
	}

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	return config.String(val)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	return config.Int(val)
}

// GetFloat retrieves a floating point configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	return config.Float(val)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	return config.Bool(val)
}

// Set stores a configuration value in the file and persists immediately.
// An environment override for the same key still takes precedence.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the TOML file and the .env files.
func (s *ConfigStore) Load() error {
	data, err := readTOML(s.filePath)
	if err != nil {
		return err
	}
	dotenv, err := readDotenv(s.envFiles)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.dotenv = dotenv
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Overrides lists the keys among keys whose value currently comes from the
// environment, mapped to the variable name supplying it.
func (s *ConfigStore) Overrides(keys []string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string)
	if s.envPrefix == "" {
		return out
	}
	for _, key := range keys {
		name := config.EnvName(s.envPrefix, key)
		if _, ok := os.LookupEnv(name); ok {
			out[key] = name
		} else if _, ok := s.dotenv[name]; ok {
			out[key] = name
		}
	}
	return out
}

func readTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return flattenMap(loaded, ""), nil
}

// readDotenv merges .env files. Earlier files win.
func readDotenv(paths []string) (map[string]string, error) {
	merged := make(map[string]string)
	for i := len(paths) - 1; i >= 0; i-- {
		vars, err := godotenv.Read(paths[i])
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", paths[i], err)
		}
		for k, v := range vars {
			merged[k] = v
		}
	}
	return merged, nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}
