// Package config loads lintel.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
)

// FileName is the configuration file looked up from the target path upwards.
const FileName = "lintel.toml"

// DefaultMaxSize skips files larger than this unless [files].max_size says otherwise.
const DefaultMaxSize = 1 << 20

var (
	ErrUnknownKey   = errors.New("unknown configuration key")
	ErrInvalidLevel = errors.New("invalid rule level")
)

// Level is a rule setting in [linter.rules].
type Level string

const (
	LevelOff   Level = "off"
	LevelHint  Level = "hint"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func parseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelOff, LevelHint, LevelInfo, LevelWarn, LevelError:
		return l, nil
	case "warning":
		return LevelWarn, nil
	}
	return "", fmt.Errorf("%w %q (expected off, hint, info, warn or error)", ErrInvalidLevel, s)
}

type Linter struct {
	// Recommended limits the run to recommended rules plus those named in Rules.
	Recommended bool
	// Rules maps "group" or "group/rule" to a level.
	Rules                    map[string]Level
	Globals                  []string
	ReportUnusedSuppressions bool
}

type Files struct {
	Ignore  []string
	MaxSize uint64
}

// Config is a decoded lintel.toml. Path is empty for the defaults.
type Config struct {
	Path   string
	Root   string
	Linter Linter
	Files  Files
}

// Default is the configuration used when no lintel.toml is found.
func Default() *Config {
	return &Config{
		Linter: Linter{Recommended: true, Rules: map[string]Level{}},
		Files:  Files{MaxSize: DefaultMaxSize},
	}
}

type rawConfig struct {
	Linter struct {
		Recommended              *bool             `toml:"recommended"`
		Rules                    map[string]string `toml:"rules"`
		Globals                  []string          `toml:"globals"`
		ReportUnusedSuppressions bool              `toml:"report_unused_suppressions"`
	} `toml:"linter"`
	Files struct {
		Ignore  []string `toml:"ignore"`
		MaxSize string   `toml:"max_size"`
	} `toml:"files"`
}

// Find walks up from startDir to locate lintel.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the file at path. Unknown keys are errors.
func Load(path string) (*Config, error) {
	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if raw.Linter.Recommended != nil {
		cfg.Linter.Recommended = *raw.Linter.Recommended
	}
	for name, level := range raw.Linter.Rules {
		l, err := parseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%s: [linter.rules] %q: %w", path, name, err)
		}
		cfg.Linter.Rules[strings.TrimPrefix(name, "lint/")] = l
	}
	cfg.Linter.Globals = slices.Clone(raw.Linter.Globals)
	cfg.Linter.ReportUnusedSuppressions = raw.Linter.ReportUnusedSuppressions
	cfg.Files.Ignore = slices.Clone(raw.Files.Ignore)
	if raw.Files.MaxSize != "" {
		size, err := humanize.ParseBytes(raw.Files.MaxSize)
		if err != nil {
			return nil, fmt.Errorf("%s: [files] max_size: %w", path, err)
		}
		cfg.Files.MaxSize = size
	}
	return cfg, nil
}

// Discover loads the nearest lintel.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Ignored reports whether path matches one of [files].ignore. A pattern
// matches a whole path component ("vendor") or, when it contains a slash
// or glob characters, the slash-separated path relative to Root.
func (c *Config) Ignored(path string) bool {
	if len(c.Files.Ignore) == 0 {
		return false
	}
	rel := path
	if c.Root != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if r, err := filepath.Rel(c.Root, abs); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
	}
	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")
	for _, pat := range c.Files.Ignore {
		pat = strings.TrimSuffix(filepath.ToSlash(pat), "/")
		if !strings.ContainsAny(pat, "/*?[") {
			if slices.Contains(parts, pat) {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		// a pattern also matches everything below a matching directory
		for i := 1; i < len(parts); i++ {
			if ok, _ := filepath.Match(pat, strings.Join(parts[:i], "/")); ok {
				return true
			}
		}
	}
	return false
}

// TooLarge reports whether a file of size bytes exceeds [files].max_size.
func (c *Config) TooLarge(size int64) bool {
	return c.Files.MaxSize > 0 && size > 0 && uint64(size) > c.Files.MaxSize
}
