package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dragboard/internal/autoscroll"
)

const configFileName = "config.json"

type Config struct {
	Autoscroll *AutoscrollConfig `json:"autoscroll,omitempty"`
	TUI        *TUIConfig        `json:"tui,omitempty"`
}

// AutoscrollConfig overrides the drag autoscroll tuning. Zero fields keep
// their defaults. Distances are terminal cells.
type AutoscrollConfig struct {
	EdgeZone        float64 `json:"edgeZone,omitempty"`
	OverdragFloor   float64 `json:"overdragFloor,omitempty"`
	Step            float64 `json:"step,omitempty"`
	OverdragDivisor float64 `json:"overdragDivisor,omitempty"`
	DurationMs      int     `json:"durationMs,omitempty"`
}

type TUIConfig struct {
	// Layout is "stacked" (default) or "columns".
	Layout string `json:"layout,omitempty"`
	// Profile is "default" or "mono".
	Profile string `json:"profile,omitempty"`
	// Glyphs is "unicode" (default) or "ascii".
	Glyphs string `json:"glyphs,omitempty"`
}

const (
	LayoutStacked = "stacked"
	LayoutColumns = "columns"
)

// DefaultAutoscroll is the stock tuning scaled to terminal cells.
func DefaultAutoscroll() autoscroll.Config {
	c := autoscroll.DefaultConfig()
	c.EdgeZone = 2
	c.OverdragFloor = 2
	c.OverdragDivisor = 3
	return c
}

// AutoscrollFor merges the configured overrides onto DefaultAutoscroll for a
// viewport scrolling along axis.
func (c *Config) AutoscrollFor(axis autoscroll.Axis) (autoscroll.Config, error) {
	out := DefaultAutoscroll()
	out.Axis = axis
	if c == nil || c.Autoscroll == nil {
		return out, nil
	}
	a := c.Autoscroll
	if a.EdgeZone != 0 {
		out.EdgeZone = a.EdgeZone
	}
	if a.OverdragFloor != 0 {
		out.OverdragFloor = a.OverdragFloor
	}
	if a.Step != 0 {
		out.Step = a.Step
	}
	if a.OverdragDivisor != 0 {
		out.OverdragDivisor = a.OverdragDivisor
	}
	if a.DurationMs != 0 {
		out.Duration = time.Duration(a.DurationMs) * time.Millisecond
	}
	if err := out.Validate(); err != nil {
		return autoscroll.Config{}, fmt.Errorf("autoscroll config: %w", err)
	}
	return out, nil
}

// Layout returns the configured layout, defaulting to stacked.
func (c *Config) Layout() string {
	if c == nil || c.TUI == nil {
		return LayoutStacked
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Layout)) {
	case LayoutColumns:
		return LayoutColumns
	default:
		return LayoutStacked
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.TUI != nil {
		switch strings.ToLower(strings.TrimSpace(c.TUI.Layout)) {
		case "", LayoutStacked, LayoutColumns:
		default:
			return fmt.Errorf("unknown tui layout: %q", c.TUI.Layout)
		}
		switch strings.ToLower(strings.TrimSpace(c.TUI.Glyphs)) {
		case "", "unicode", "utf8", "ascii":
		default:
			return fmt.Errorf("unknown tui glyphs: %q", c.TUI.Glyphs)
		}
	}
	_, err := c.AutoscrollFor(autoscroll.Vertical)
	return err
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests away from the real config).
	if v := strings.TrimSpace(os.Getenv("DRAGBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "dragboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads the config file. A missing file yields an empty Config.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
