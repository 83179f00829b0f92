// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/heatgrid/pkg/export"
	"github.com/user/heatgrid/pkg/grid"
)

// Config represents the full configuration for heatgrid.
type Config struct {
	// Input
	DataDir string `yaml:"data_dir"`
	Metric  string `yaml:"metric"`

	// Interactive grid
	CellMinWidth    float64 `yaml:"cell_min_width"`
	CellMinHeight   float64 `yaml:"cell_min_height"`
	MonthGutter     float64 `yaml:"month_gutter"`
	AxisHeight      float64 `yaml:"axis_height"`
	HighlightStroke float64 `yaml:"highlight_stroke"`

	// Viewport for the headless surface
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`

	// Raster output
	Width      int     `yaml:"width"`
	CellHeight float64 `yaml:"cell_height"`
	Rows       int     `yaml:"rows"`
	FontPath   string  `yaml:"font_path"`
	FontSize   float64 `yaml:"font_size"`

	Theme ThemeConfig `yaml:"theme"`
}

// ThemeConfig represents theming options.
type ThemeConfig struct {
	BackgroundColor  string `yaml:"background_color"`
	BorderColor      string `yaml:"border_color"`
	HighlightColor   string `yaml:"highlight_color"`
	MissingCellColor string `yaml:"missing_cell_color"`
	TextColor        string `yaml:"text_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	g := grid.DefaultConfig()
	r := export.DefaultRasterOptions()
	return Config{
		DataDir: "./data",
		Metric:  "daily_fertility_rate",

		CellMinWidth:    g.CellMinWidth,
		CellMinHeight:   g.CellMinHeight,
		MonthGutter:     g.MonthGutter,
		AxisHeight:      g.AxisHeight,
		HighlightStroke: g.HighlightStroke,

		ViewportWidth:  960,
		ViewportHeight: 420,

		Width:      r.Width,
		CellHeight: r.CellHeight,
		Rows:       r.Rows,
		FontSize:   r.FontSize,

		Theme: ThemeConfig{
			BackgroundColor:  g.Theme.Background,
			BorderColor:      g.Theme.Border,
			HighlightColor:   g.Theme.Highlight,
			MissingCellColor: g.Theme.MissingCell,
			TextColor:        g.Theme.Text,
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// GridConfig converts the configuration into a grid.Config.
func (c Config) GridConfig() grid.Config {
	return grid.Config{
		CellMinWidth:    c.CellMinWidth,
		CellMinHeight:   c.CellMinHeight,
		MonthGutter:     c.MonthGutter,
		AxisHeight:      c.AxisHeight,
		HighlightStroke: c.HighlightStroke,
		Theme: grid.Theme{
			Background:  c.Theme.BackgroundColor,
			Border:      c.Theme.BorderColor,
			Highlight:   c.Theme.HighlightColor,
			MissingCell: c.Theme.MissingCellColor,
			Text:        c.Theme.TextColor,
		},
	}
}

// RasterOptions converts the configuration into export.RasterOptions.
func (c Config) RasterOptions() export.RasterOptions {
	opts := export.DefaultRasterOptions()
	opts.Width = c.Width
	opts.CellHeight = c.CellHeight
	opts.Rows = c.Rows
	opts.FontPath = c.FontPath
	opts.FontSize = c.FontSize
	opts.Background = ParseColor(c.Theme.BackgroundColor)
	opts.TextColor = ParseColor(c.Theme.TextColor)
	opts.MissingCell = ParseColor(c.Theme.MissingCellColor)
	return opts
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint8
	switch len(hex) {
	case 6:
		r = hexByte(hex[0], hex[1])
		g = hexByte(hex[2], hex[3])
		b = hexByte(hex[4], hex[5])
	case 3:
		r = hexByte(hex[0], hex[0])
		g = hexByte(hex[1], hex[1])
		b = hexByte(hex[2], hex[2])
	default:
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
