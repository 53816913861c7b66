package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pelletier/go-toml/v2"

	"seek/internal/domain"
)

// Config is the immutable configuration of one search, constructed once
// by the CLI layer and shared read-only with every worker.
type Config struct {
	Root    string
	Pattern string
	Mode    domain.PatternMode
	Target  domain.MatchTarget

	FilesOnly bool
	DirsOnly  bool

	MaxDepth int           // -1 = unlimited
	MaxFiles uint64        // 0 = unlimited
	Timeout  time.Duration // 0 = none
	Workers  int           // <= 0 = available parallelism

	ShowPermissionErrors bool
}

// ErrConflictingFilters signals a files-only plus dirs-only combination
var ErrConflictingFilters = errors.New("--files-only and --dirs-only are mutually exclusive")

// Validate checks cross-field constraints before the engine starts
func (c *Config) Validate() error {
	if c.FilesOnly && c.DirsOnly {
		return ErrConflictingFilters
	}
	if c.Root == "" {
		return errors.New("search path must not be empty")
	}
	if c.Pattern == "" {
		return errors.New("search pattern must not be empty")
	}
	return nil
}

// WorkerCount resolves the worker pool size
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// WantKind reports whether an entry of the given kind qualifies for output
func (c *Config) WantKind(isDir bool) bool {
	if c.FilesOnly && isDir {
		return false
	}
	if c.DirsOnly && !isDir {
		return false
	}
	return true
}

// Defaults are optional user-level defaults loaded from seek.toml.
// Pointer fields distinguish "absent" from an explicit zero.
type Defaults struct {
	MaxFiles             *uint64 `toml:"max_files"`
	TimeoutSeconds       *uint64 `toml:"timeout_seconds"`
	Workers              *int    `toml:"workers"`
	ShowPermissionErrors *bool   `toml:"show_permission_errors"`
}

// DefaultsPath returns the expected location of the defaults file
func DefaultsPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "seek", "seek.toml")
}

// LoadDefaults reads the user defaults file. A missing file is not an
// error; a malformed one is.
func LoadDefaults() (*Defaults, error) {
	path := DefaultsPath()
	if path == "" {
		return &Defaults{}, nil
	}
	return LoadDefaultsFromPath(path)
}

// LoadDefaultsFromPath reads a defaults file from a specific path
func LoadDefaultsFromPath(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Defaults{}, nil
		}
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}

	var d Defaults
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &d, nil
}
