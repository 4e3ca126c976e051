// Package config implements the persisted settings store. Settings live in a
// small YAML file beside the executable so the tool stays portable, mirroring
// the paths/options groups the backend deployment expects.
package config

import (
	"os"
	"path/filepath"

	"statdesk/pkg/types"

	apperrors "statdesk/internal/errors"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file kept next to the running executable.
const FileName = "config.yaml"

// Config represents the persisted application settings.
type Config struct {
	Paths struct {
		OutputPath       string `yaml:"outputPath"`       // output directory for processed files
		InputPath        string `yaml:"inputPath"`        // scanned directory in directory mode
		LastSelectedPath string `yaml:"lastSelectedPath"` // starting point for file dialogs
	} `yaml:"paths"`
	Options struct {
		ConflictIndex       int  `yaml:"conflictIndex"`       // 0=rename 1=overwrite 2=skip
		OutputToSource      bool `yaml:"outputToSource"`      // write next to each source file
		UseDirectoryMode    bool `yaml:"useDirectoryMode"`    // derive the file set from InputPath
		DontAskOnModeChange bool `yaml:"dontAskOnModeChange"` // skip the mode-switch confirmation
	} `yaml:"options"`
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}
	cfg.Options.ConflictIndex = types.Skip.Index()
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Paths.LastSelectedPath = home
	}
	return cfg
}

// DefaultPath returns the settings file location beside the executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", apperrors.NewConfigError("cannot locate executable", err)
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return New(), err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from a specific file. A missing file is
// not an error: defaults are returned so a fresh install starts clean.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.NewConfigError("error reading settings file", err)
	}

	// Unmarshal over the defaults: keys absent from the file keep their
	// default values.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigError("error parsing settings file", err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewConfigError("failed to create settings directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return apperrors.NewConfigError("failed to marshal settings", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewConfigError("failed to write settings file", err)
	}
	return nil
}

// normalize clamps persisted values into their valid ranges.
func (c *Config) normalize() {
	if c.Options.ConflictIndex < 0 || c.Options.ConflictIndex > 2 {
		c.Options.ConflictIndex = types.Skip.Index()
	}
}

// ConflictPolicy returns the persisted conflict policy.
func (c *Config) ConflictPolicy() types.ConflictPolicy {
	return types.ConflictPolicyFromIndex(c.Options.ConflictIndex)
}

// ModeState returns the persisted input-mode settings.
func (c *Config) ModeState() types.ModeState {
	return types.ModeState{
		DirectoryMode:       c.Options.UseDirectoryMode,
		DirectoryPath:       c.Paths.InputPath,
		DontAskOnModeChange: c.Options.DontAskOnModeChange,
	}
}

// ApplyModeState stores mode-controller state back into the settings.
func (c *Config) ApplyModeState(m types.ModeState) {
	c.Options.UseDirectoryMode = m.DirectoryMode
	c.Paths.InputPath = m.DirectoryPath
	c.Options.DontAskOnModeChange = m.DontAskOnModeChange
}

// RunConfig snapshots the output options for a processing run.
func (c *Config) RunConfig() types.RunConfig {
	return types.RunConfig{
		ConflictPolicy:       c.ConflictPolicy(),
		OutputDir:            c.Paths.OutputPath,
		UseSourceDirAsOutput: c.Options.OutputToSource,
	}
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := New()
	cfg.Paths.OutputPath = "/tmp/statdesk-out"
	cfg.Options.ConflictIndex = types.Rename.Index()
	return cfg
}
