// Package svg renders a timeline layout result to an SVG document.
package svg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme controls the appearance of the rendered timeline.
// It maps directly to an optional YAML theme file.
type Theme struct {
	Font struct {
		Family string `yaml:"family"` // Font family for all text elements
		Size   int    `yaml:"size"`   // Base font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"` // SVG background color
		Bar        string `yaml:"bar"`        // Milestone bar fill
		BarBorder  string `yaml:"bar_border"` // Milestone bar stroke
		Progress   string `yaml:"progress"`   // Completed-portion fill
		Connector  string `yaml:"connector"`  // Dependency curve stroke
		Conflict   string `yaml:"conflict"`   // Bar fill for invalid live sessions
		Text       string `yaml:"text"`       // Label color
	} `yaml:"colors"`
	Layout struct {
		PaddingTop   int `yaml:"padding_top"`   // Space above the first row in pixels
		PaddingLeft  int `yaml:"padding_left"`  // Space left of the earliest bar in pixels
		CornerRadius int `yaml:"corner_radius"` // Bar corner radius in pixels
	} `yaml:"layout"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	var t Theme
	t.Font.Family = "Arial, sans-serif"
	t.Font.Size = 12
	t.Colors.Background = "#ffffff"
	t.Colors.Bar = "#4285f4"
	t.Colors.BarBorder = "#2a56a5"
	t.Colors.Progress = "#1a3a75"
	t.Colors.Connector = "#888888"
	t.Colors.Conflict = "#e05d44"
	t.Colors.Text = "#333333"
	t.Layout.PaddingTop = 20
	t.Layout.PaddingLeft = 20
	t.Layout.CornerRadius = 3
	return t
}

// LoadTheme reads a YAML theme file, filling unset values from the default
// theme.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read theme: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse theme: %w", err)
	}
	return t, nil
}
