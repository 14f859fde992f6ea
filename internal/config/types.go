// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/typeset/typeset/internal/render"
	"github.com/typeset/typeset/pkg/layout"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MinPageWidth and MaxPageWidth bound the page width in columns.
	MinPageWidth PageWidth = 20
	MaxPageWidth PageWidth = 1000
	// MaxFontSize is the largest accepted base font size in points.
	MaxFontSize FontSize = 72
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPageWidth is returned when a PageWidth is out of range.
	ErrInvalidPageWidth = errors.New("invalid page width")
	// ErrInvalidFontSize is returned when a FontSize is out of range.
	ErrInvalidFontSize = errors.New("invalid font size")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// PageWidth is the usable page width in terminal columns.
	PageWidth int

	// InvalidPageWidthError is returned when a PageWidth is outside
	// [MinPageWidth, MaxPageWidth].
	InvalidPageWidthError struct {
		Value PageWidth
	}

	// FontSize is the base font size in points.
	FontSize float64

	// InvalidFontSizeError is returned when a FontSize is not in (0, MaxFontSize].
	InvalidFontSizeError struct {
		Value FontSize
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Layout configures the layout phase
		Layout LayoutConfig `json:"layout" mapstructure:"layout"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// LayoutConfig configures how documents are laid out.
	LayoutConfig struct {
		// Concurrent lays out sibling functions concurrently (default: true)
		Concurrent bool `json:"concurrent" mapstructure:"concurrent"`
		// PageWidth is the page width in columns (default: 80)
		PageWidth PageWidth `json:"page_width" mapstructure:"page_width"`
		// FontSize is the base font size in points (default: 11)
		FontSize FontSize `json:"font_size" mapstructure:"font_size"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme: "auto", "dark", or "light"
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidPageWidthError.
func (e *InvalidPageWidthError) Error() string {
	return fmt.Sprintf("invalid page width %d (valid: %d to %d columns)", e.Value, MinPageWidth, MaxPageWidth)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidPageWidthError) Unwrap() error { return ErrInvalidPageWidth }

// IsValid returns whether the page width is within bounds.
func (w PageWidth) IsValid() (bool, []error) {
	if w < MinPageWidth || w > MaxPageWidth {
		return false, []error{&InvalidPageWidthError{Value: w}}
	}
	return true, nil
}

// Points converts the width in columns to points.
func (w PageWidth) Points() float64 {
	return float64(w) * render.PointsPerColumn
}

// Error implements the error interface for InvalidFontSizeError.
func (e *InvalidFontSizeError) Error() string {
	return fmt.Sprintf("invalid font size %gpt (valid: above 0 up to %gpt)", float64(e.Value), float64(MaxFontSize))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFontSizeError) Unwrap() error { return ErrInvalidFontSize }

// IsValid returns whether the font size is positive and not above MaxFontSize.
func (s FontSize) IsValid() (bool, []error) {
	if s <= 0 || s > MaxFontSize {
		return false, []error{&InvalidFontSizeError{Value: s}}
	}
	return true, nil
}

// IsValid returns whether every field of the Config is valid.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Layout.PageWidth.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Layout.FontSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// LayoutOptions converts the layout settings into options for a layout pass.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		PageWidth:  c.Layout.PageWidth.Points(),
		FontSize:   float64(c.Layout.FontSize),
		Sequential: !c.Layout.Concurrent,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Concurrent: true,
			PageWidth:  80,
			FontSize:   FontSize(layout.DefaultFontSize),
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
