package versiongate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultVersionFile is the version file used when nothing else is configured.
	DefaultVersionFile = "version.md"

	// ConfigFileName is the optional per-repository config file, read from the root.
	ConfigFileName = ".versiongate.yaml"

	// VersionFileEnv overrides the configured version file.
	VersionFileEnv = "VERSIONGATE_VERSION_FILE"
)

// Color modes accepted by the color config key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings read from .versiongate.yaml.
type Config struct {
	VersionFile string `yaml:"version_file"`
	Color       string `yaml:"color"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{VersionFile: DefaultVersionFile, Color: ColorAuto}
}

// LoadConfig reads ConfigFileName from root. A missing file yields DefaultConfig.
func LoadConfig(root string) (Config, error) {
	path := filepath.Join(root, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML config payload. Unset keys keep
// their defaults and unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(cfg.VersionFile) == "" {
		cfg.VersionFile = DefaultVersionFile
	}
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the color mode and the version file path.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be one of %s, %s or %s, got %q", ErrInvalidConfig, ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	_, err := CleanVersionFile(c.VersionFile)
	return err
}

// ResolveVersionFile applies the precedence flag > environment > config.
func (c Config) ResolveVersionFile(flagValue string) (string, error) {
	path := c.VersionFile
	if env := strings.TrimSpace(os.Getenv(VersionFileEnv)); env != "" {
		path = env
	}
	if flagValue != "" {
		path = flagValue
	}
	return CleanVersionFile(path)
}

// CleanVersionFile cleans path and rejects it unless it stays inside the
// repository root. The result uses the host path separator.
func CleanVersionFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: version file path is empty", ErrInvalidConfig)
	}
	slashed := filepath.ToSlash(path)
	if filepath.IsAbs(path) || strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("%w: version file %q must be relative to the repository root", ErrInvalidConfig, path)
	}
	slashed = pathpkg.Clean(slashed)
	if err := module.CheckFilePath(slashed); err != nil {
		return "", fmt.Errorf("%w: version file %q: %v", ErrInvalidConfig, path, err)
	}
	return filepath.FromSlash(slashed), nil
}

// FindRoot walks up from startDir until it finds a directory holding .git
// (a directory, or a file for worktrees and submodules). If none is found it
// returns startDir.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", startDir, err)
	}
	d := abs
	for {
		if _, err := os.Stat(filepath.Join(d, ".git")); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return abs, nil
}
