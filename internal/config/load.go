package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/wslarc/wslarc/internal/messages"
)

// ErrConfigValidation wraps configuration problems (as opposed to filesystem or
// TOML syntax errors). Callers use errors.Is to tell the two apart.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads, parses, and expands the config at path.
func Load(path string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS reads, parses, and expands the config at path from fsys.
func LoadFS(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	return Parse(data, path)
}

// LoadOrDefault loads path when it exists and returns Default() otherwise.
func LoadOrDefault(path string) (*Config, error) {
	return LoadOrDefaultFS(afero.NewOsFs(), path)
}

// LoadOrDefaultFS is LoadOrDefault over fsys.
func LoadOrDefaultFS(fsys afero.Fs, path string) (*Config, error) {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	if !exists {
		return Default(), nil
	}
	return LoadFS(fsys, path)
}

// Parse decodes config TOML. source is used in error messages.
// Scalar fields omitted from the file keep their defaults; subvolume maps do not,
// so a file that lists only @home gets only @home.
func Parse(data []byte, source string) (*Config, error) {
	raw := defaultFileConfig()
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	cfg, err := raw.toConfig(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	ExpandVariables(cfg)
	return cfg, nil
}

// decodeStrict re-decodes with unknown-field rejection. toml.Unmarshal ignores
// keys the model does not know about.
func decodeStrict(data []byte) error {
	var raw fileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&raw)
}

// Save writes cfg to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	return SaveFS(afero.NewOsFs(), cfg, path)
}

// SaveFS writes cfg to path on fsys.
func SaveFS(fsys afero.Fs, cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.ConfigCreateDirFailedFmt, dir, err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	return nil
}

// Marshal encodes cfg as TOML. The output is deterministic for identical input.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(fromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigEncodeFailedFmt, err)
	}
	return data, nil
}
