package pager

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"github.com/pelletier/go-toml/v2"
)

// WheelMode selects when mouse wheel and touchpad scrolling pages the view.
type WheelMode string

const (
	// WheelShift pages only while Shift is held, the usual desktop gesture for
	// horizontal scrolling.
	WheelShift WheelMode = "shift"
	// WheelAlways pages on every wheel event, vertical deltas included.
	WheelAlways WheelMode = "always"
	// WheelOff leaves wheel events to the enclosing containers.
	WheelOff WheelMode = "off"
)

// Config holds the tunables of a PageView.
// A zero PageWidth and PageHeight sizes every page to the viewport.
type Config struct {
	PageWidth  float32 `toml:"page_width"`
	PageHeight float32 `toml:"page_height"`

	SpaceMultiplier  float32 `toml:"space_multiplier"`
	RecenterFraction float32 `toml:"recenter_fraction"`
	ReuseCapacity    int     `toml:"reuse_capacity"`

	SettleMillis   int       `toml:"settle_ms"`   // 0 jumps straight to the snapped page
	MomentumMillis int       `toml:"momentum_ms"` // how far ahead drag velocity is projected
	IdleMillis     int       `toml:"idle_ms"`     // pause before release that zeroes velocity
	WheelNotch     float32   `toml:"wheel_notch"`
	WheelMode      WheelMode `toml:"wheel_mode"`
}

// DefaultConfig returns the configuration used by NewPageView.
func DefaultConfig() Config {
	return Config{
		SpaceMultiplier:  DefaultSpaceMultiplier,
		RecenterFraction: DefaultRecenterFraction,
		ReuseCapacity:    DefaultReuseCapacity,
		SettleMillis:     180,
		MomentumMillis:   250,
		IdleMillis:       80,
		WheelNotch:       DefaultWheelNotch,
		WheelMode:        WheelShift,
	}
}

// PageSize returns the configured page size; zero means fit to viewport.
func (c Config) PageSize() fyne.Size {
	return fyne.NewSize(c.PageWidth, c.PageHeight)
}

func (c Config) settleDuration() time.Duration {
	return time.Duration(c.SettleMillis) * time.Millisecond
}

func (c Config) momentumWindow() time.Duration {
	return time.Duration(c.MomentumMillis) * time.Millisecond
}

func (c Config) idleTimeout() time.Duration {
	return time.Duration(c.IdleMillis) * time.Millisecond
}

// Validate checks that the configuration can drive a PageView.
func (c Config) Validate() error {
	if err := validatePageSize(c.PageSize()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.SpaceMultiplier < 3 {
		return fmt.Errorf("%w: space_multiplier must be at least 3, got %v", ErrInvalidConfig, c.SpaceMultiplier)
	}
	if c.RecenterFraction <= 0 || c.RecenterFraction >= 0.5 {
		return fmt.Errorf("%w: recenter_fraction must be within (0, 0.5), got %v", ErrInvalidConfig, c.RecenterFraction)
	}
	if c.ReuseCapacity < 0 {
		return fmt.Errorf("%w: reuse_capacity must not be negative, got %d", ErrInvalidConfig, c.ReuseCapacity)
	}
	if c.SettleMillis < 0 || c.MomentumMillis < 0 || c.IdleMillis < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	if c.WheelNotch <= 0 {
		return fmt.Errorf("%w: wheel_notch must be positive, got %v", ErrInvalidConfig, c.WheelNotch)
	}
	switch c.WheelMode {
	case WheelShift, WheelAlways, WheelOff:
	default:
		return fmt.Errorf("%w: unknown wheel_mode %q", ErrInvalidConfig, c.WheelMode)
	}
	return nil
}

func validatePageSize(size fyne.Size) error {
	if size.Width < 0 || size.Height < 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidPageSize, size.Width, size.Height)
	}
	return nil
}

// LoadConfig reads a TOML file over the defaults, applies XPAGEVIEW_*
// environment overrides and validates the result.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	return LoadConfigWithDefaults(DefaultConfig(), path)
}

// LoadConfigWithDefaults is LoadConfig starting from base instead of
// DefaultConfig, for applications that want different defaults while still
// honouring the user's file and environment.
func LoadConfigWithDefaults(base Config, path string) (Config, error) {
	cfg := base

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("reading pager config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing pager config: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	floats := []struct {
		key string
		dst *float32
	}{
		{"XPAGEVIEW_PAGE_WIDTH", &cfg.PageWidth},
		{"XPAGEVIEW_PAGE_HEIGHT", &cfg.PageHeight},
		{"XPAGEVIEW_SPACE_MULTIPLIER", &cfg.SpaceMultiplier},
		{"XPAGEVIEW_RECENTER_FRACTION", &cfg.RecenterFraction},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.key, err)
		}
		*f.dst = float32(parsed)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"XPAGEVIEW_REUSE_CAPACITY", &cfg.ReuseCapacity},
		{"XPAGEVIEW_SETTLE_MS", &cfg.SettleMillis},
	}
	for _, i := range ints {
		v := os.Getenv(i.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", i.key, err)
		}
		*i.dst = parsed
	}

	if v := os.Getenv("XPAGEVIEW_WHEEL_MODE"); v != "" {
		cfg.WheelMode = WheelMode(v)
	}
	return nil
}
