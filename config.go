package canopy

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Configuration errors returned by Config.Validate and LoadConfig.
var (
	ErrInvalidSpacing   = errors.New("spacing must be positive")
	ErrInvalidNodeSize  = errors.New("node size must be positive")
	ErrInvalidZoomRange = errors.New("invalid zoom range")
	ErrInvalidViewport  = errors.New("viewport size must be positive")
	ErrInvalidTiming    = errors.New("invalid camera timing")
	ErrUnknownFormat    = errors.New("unknown config format")
)

// Config holds the layout and camera constants. Use DefaultConfig and
// override fields rather than starting from the zero value.
type Config struct {
	// HorizontalSpacing is the world distance between sibling slots.
	HorizontalSpacing float64 `toml:"horizontal_spacing" yaml:"horizontal_spacing"`
	// VerticalSpacing is the world distance between depth levels.
	VerticalSpacing float64 `toml:"vertical_spacing" yaml:"vertical_spacing"`

	NodeWidth  float64 `toml:"node_width" yaml:"node_width"`
	NodeHeight float64 `toml:"node_height" yaml:"node_height"`

	// LineAdjustment shifts connector lines left of the slot's half-spacing
	// point. Nil derives HorizontalSpacing/2 - NodeWidth/2, which puts the
	// lines through the horizontal center of each node.
	LineAdjustment *float64 `toml:"line_adjustment" yaml:"line_adjustment"`

	// CullMargin pads the visible rectangle (in world units) so small pans
	// do not pop nodes in at the edges.
	CullMargin float64 `toml:"cull_margin" yaml:"cull_margin"`

	MinScale     float64 `toml:"min_scale" yaml:"min_scale"`
	MaxScale     float64 `toml:"max_scale" yaml:"max_scale"`
	InitialScale float64 `toml:"initial_scale" yaml:"initial_scale"`
	// ZoomStep is the factor applied by one zoom in or out step.
	ZoomStep float64 `toml:"zoom_step" yaml:"zoom_step"`

	// WheelDamping scales accumulated wheel deltas into pan pixels.
	WheelDamping float64 `toml:"wheel_damping" yaml:"wheel_damping"`
	// LineDeltaPixels converts line-mode wheel deltas to pixels.
	LineDeltaPixels float64 `toml:"line_delta_pixels" yaml:"line_delta_pixels"`

	// RecenterDuration is the recenter animation length in seconds.
	RecenterDuration float32 `toml:"recenter_duration" yaml:"recenter_duration"`
	// CenterOffsetX/Y shift the recenter target in screen pixels.
	CenterOffsetX float64 `toml:"center_offset_x" yaml:"center_offset_x"`
	CenterOffsetY float64 `toml:"center_offset_y" yaml:"center_offset_y"`

	ViewportWidth  float64 `toml:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `toml:"viewport_height" yaml:"viewport_height"`

	// DisablePan ignores drag and wheel input.
	DisablePan bool `toml:"disable_pan" yaml:"disable_pan"`
	// DisableZoom ignores zoom steps.
	DisableZoom bool `toml:"disable_zoom" yaml:"disable_zoom"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		HorizontalSpacing: 150,
		VerticalSpacing:   100,
		NodeWidth:         40,
		NodeHeight:        40,
		CullMargin:        100,
		MinScale:          0.25,
		MaxScale:          3,
		InitialScale:      1,
		ZoomStep:          1.2,
		WheelDamping:      0.6,
		LineDeltaPixels:   16,
		RecenterDuration:  0.3,
		ViewportWidth:     1280,
		ViewportHeight:    800,
	}
}

// positive reports whether v is a finite number greater than zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate rejects configurations that would produce NaN or infinite
// layouts. It reports the first problem found.
func (c Config) Validate() error {
	if !positive(c.HorizontalSpacing) || !positive(c.VerticalSpacing) {
		return fmt.Errorf("validate config: horizontal %v, vertical %v: %w",
			c.HorizontalSpacing, c.VerticalSpacing, ErrInvalidSpacing)
	}
	if !positive(c.NodeWidth) || !positive(c.NodeHeight) {
		return fmt.Errorf("validate config: node %vx%v: %w",
			c.NodeWidth, c.NodeHeight, ErrInvalidNodeSize)
	}
	if !positive(c.MinScale) || !positive(c.MaxScale) || c.MinScale > c.MaxScale {
		return fmt.Errorf("validate config: scale [%v, %v]: %w",
			c.MinScale, c.MaxScale, ErrInvalidZoomRange)
	}
	if !(c.InitialScale >= c.MinScale && c.InitialScale <= c.MaxScale) {
		return fmt.Errorf("validate config: initial scale %v outside [%v, %v]: %w",
			c.InitialScale, c.MinScale, c.MaxScale, ErrInvalidZoomRange)
	}
	if !(c.ZoomStep > 1) || math.IsInf(c.ZoomStep, 1) {
		return fmt.Errorf("validate config: zoom step %v must exceed 1: %w",
			c.ZoomStep, ErrInvalidZoomRange)
	}
	if !positive(c.ViewportWidth) || !positive(c.ViewportHeight) {
		return fmt.Errorf("validate config: viewport %vx%v: %w",
			c.ViewportWidth, c.ViewportHeight, ErrInvalidViewport)
	}
	if !(c.CullMargin >= 0) || !finite(c.CullMargin) {
		return fmt.Errorf("validate config: cull margin %v: %w", c.CullMargin, ErrInvalidSpacing)
	}
	if c.LineAdjustment != nil && !finite(*c.LineAdjustment) {
		return fmt.Errorf("validate config: line adjustment %v: %w", *c.LineAdjustment, ErrInvalidSpacing)
	}
	if !finite(c.CenterOffsetX) || !finite(c.CenterOffsetY) {
		return fmt.Errorf("validate config: center offset (%v, %v): %w",
			c.CenterOffsetX, c.CenterOffsetY, ErrInvalidSpacing)
	}
	if !positive(float64(c.RecenterDuration)) ||
		!(c.WheelDamping >= 0) || !finite(c.WheelDamping) ||
		!(c.LineDeltaPixels >= 0) || !finite(c.LineDeltaPixels) {
		return fmt.Errorf("validate config: duration %v, damping %v, line delta %v: %w",
			c.RecenterDuration, c.WheelDamping, c.LineDeltaPixels, ErrInvalidTiming)
	}
	return nil
}

// lineAnchor returns the x offset from a slot's origin at which connector
// lines are drawn.
func (c Config) lineAnchor() float64 {
	half := c.HorizontalSpacing / 2
	adj := half - c.NodeWidth/2
	if c.LineAdjustment != nil {
		adj = *c.LineAdjustment
	}
	return half - adj
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file, overlays it on
// DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("load config %s: %w", path, ErrUnknownFormat)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
