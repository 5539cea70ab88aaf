// Package config resolves the goldfish configuration from defaults, the
// global HuJSON config file, environment variables and CLI overrides, in
// that order of precedence (highest wins).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tailscale/hujson"
)

// Defaults for everything but the data file location, which depends on
// the environment.
const (
	DefaultRetain    = 100
	DefaultThreshold = 8192
)

var (
	// ErrNotFound is returned when an explicitly requested config file
	// does not exist. The default config file is optional.
	ErrNotFound = errors.New("config file not found")

	// ErrInvalid wraps any parse or validation failure.
	ErrInvalid = errors.New("invalid config")

	errDataFileEmpty    = errors.New("data_file cannot be empty (no $HOME or $XDG_DATA_HOME either)")
	errRetainInvalid    = errors.New("retain must be positive")
	errThresholdInvalid = errors.New("threshold cannot be negative")
)

// Config holds the resolved configuration.
type Config struct {
	// DataFile is the path of the cache log file.
	DataFile string

	// Retain is how many distinct entries queries report by default.
	Retain int

	// Threshold is the stale byte count past which a query compacts the
	// log.
	Threshold int64

	// Tilde abbreviates paths under $HOME with ~ on output.
	Tilde bool
}

// Sources reports where the configuration came from.
type Sources struct {
	// File is the config file path that was consulted, if any.
	File string

	// Loaded is true when File existed and was applied.
	Loaded bool
}

// fileConfig is the on-disk shape. Pointers distinguish "absent" from
// zero values during merging.
type fileConfig struct {
	DataFile  *string `json:"data_file"`
	Retain    *int    `json:"retain"`
	Threshold *int64  `json:"threshold"`
	Tilde     *bool   `json:"tilde"`
}

// Default returns the built-in configuration for the given environment.
func Default(env map[string]string) Config {
	return Config{
		DataFile:  defaultDataFile(env),
		Retain:    DefaultRetain,
		Threshold: DefaultThreshold,
		Tilde:     true,
	}
}

// DefaultPath returns where the global config file is expected:
// $XDG_CONFIG_HOME/goldfish/config.json, falling back to
// ~/.config/goldfish/config.json. Empty when neither can be derived.
func DefaultPath(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return filepath.Join(dir, "goldfish", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "goldfish", "config.json")
	}

	return ""
}

// Home returns the home directory from the environment, used for tilde
// abbreviation. Empty disables abbreviation.
func Home(env map[string]string) string {
	return env["HOME"]
}

func defaultDataFile(env map[string]string) string {
	if dir := env["XDG_DATA_HOME"]; dir != "" {
		return filepath.Join(dir, "goldfish", "history")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "goldfish", "history")
	}

	return ""
}

// Load resolves the configuration. explicitPath, when non-empty, names a
// config file that must exist; otherwise the default location is used if
// present. Environment variables (GOLDFISH_DATA_FILE, GOLDFISH_RETAIN,
// GOLDFISH_THRESHOLD, GOLDFISH_TILDE) override file values. CLI flag
// overrides are applied by the caller on top of the result.
func Load(explicitPath string, env map[string]string) (Config, Sources, error) {
	cfg := Default(env)

	var sources Sources

	path := explicitPath
	mustExist := explicitPath != ""

	if path == "" {
		path = DefaultPath(env)
	}

	if path != "" {
		sources.File = path

		loaded, err := applyFile(&cfg, path, mustExist)
		if err != nil {
			return Config{}, Sources{}, err
		}

		sources.Loaded = loaded
	}

	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, Sources{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

// Validate checks a resolved configuration. It is re-run by the CLI after
// flag overrides are applied.
func Validate(cfg Config) error {
	if cfg.DataFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalid, errDataFileEmpty)
	}

	if cfg.Retain <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errRetainInvalid)
	}

	if cfg.Threshold < 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errThresholdInvalid)
	}

	return nil
}

func applyFile(cfg *Config, path string, mustExist bool) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from flag or env
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return false, nil
		}

		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return false, fmt.Errorf("read config file %q: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(std, &fc); err != nil {
		return false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	if fc.DataFile != nil {
		cfg.DataFile = *fc.DataFile
	}

	if fc.Retain != nil {
		cfg.Retain = *fc.Retain
	}

	if fc.Threshold != nil {
		cfg.Threshold = *fc.Threshold
	}

	if fc.Tilde != nil {
		cfg.Tilde = *fc.Tilde
	}

	return true, nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	if v := env["GOLDFISH_DATA_FILE"]; v != "" {
		cfg.DataFile = v
	}

	if v := env["GOLDFISH_RETAIN"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: GOLDFISH_RETAIN=%q: %w", ErrInvalid, v, err)
		}

		cfg.Retain = n
	}

	if v := env["GOLDFISH_THRESHOLD"]; v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: GOLDFISH_THRESHOLD=%q: %w", ErrInvalid, v, err)
		}

		cfg.Threshold = n
	}

	if v := env["GOLDFISH_TILDE"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: GOLDFISH_TILDE=%q: %w", ErrInvalid, v, err)
		}

		cfg.Tilde = b
	}

	return nil
}
