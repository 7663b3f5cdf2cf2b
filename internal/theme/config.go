// internal/theme/config.go
// Package theme implements the layered theme configuration engine: a
// built-in default, an admin-set global override, and a per-user override
// merged into one always-complete effective configuration.
package theme

import (
	"regexp"
	"strings"
)

type BackgroundType string

const (
	BackgroundImage BackgroundType = "image"
	BackgroundVideo BackgroundType = "video"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type BorderRadius string

const (
	RadiusSM   BorderRadius = "sm"
	RadiusMD   BorderRadius = "md"
	RadiusLG   BorderRadius = "lg"
	RadiusXL   BorderRadius = "xl"
	Radius2XL  BorderRadius = "2xl"
	RadiusFull BorderRadius = "full"
)

const (
	defaultBackgroundURL = "https://images.unsplash.com/photo-1497366216548-37526070297c?auto=format&fit=crop&w=1920&q=80"
	defaultPrimaryColor  = "#3b82f6"
	defaultFontFamily    = "Inter, system-ui, sans-serif"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether value is a 6-digit hex color like #AABBCC.
func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Background describes the page backdrop and the glass layer on top of it.
type Background struct {
	Type    BackgroundType `json:"type"`
	URL     string         `json:"url"`
	Opacity float64        `json:"opacity"`
	Blur    int            `json:"blur"`
	Overlay string         `json:"overlay,omitempty"`
}

// Appearance describes ink styling: accent color, typography, shape, mode.
type Appearance struct {
	PrimaryColor string       `json:"primaryColor"`
	FontFamily   string       `json:"fontFamily"`
	BorderRadius BorderRadius `json:"borderRadius"`
	Mode         Mode         `json:"mode"`
}

// Config is a complete theme configuration. Values of this type handed to
// the rendering boundary are always fully populated; only Partial layers
// may have holes.
type Config struct {
	Background Background `json:"background"`
	Appearance Appearance `json:"appearance"`
}

// Default returns the built-in glassmorphism configuration. It is the base
// of every merge and is never mutated.
func Default() Config {
	return Config{
		Background: Background{
			Type:    BackgroundImage,
			URL:     defaultBackgroundURL,
			Opacity: 0.7,
			Blur:    12,
		},
		Appearance: Appearance{
			PrimaryColor: defaultPrimaryColor,
			FontFamily:   defaultFontFamily,
			BorderRadius: RadiusXL,
			Mode:         ModeLight,
		},
	}
}

// BackgroundPartial mirrors Background with every field optional.
type BackgroundPartial struct {
	Type    *BackgroundType `json:"type,omitempty"`
	URL     *string         `json:"url,omitempty"`
	Opacity *float64        `json:"opacity,omitempty"`
	Blur    *int            `json:"blur,omitempty"`
	Overlay *string         `json:"overlay,omitempty"`
}

// AppearancePartial mirrors Appearance with every field optional.
type AppearancePartial struct {
	PrimaryColor *string       `json:"primaryColor,omitempty"`
	FontFamily   *string       `json:"fontFamily,omitempty"`
	BorderRadius *BorderRadius `json:"borderRadius,omitempty"`
	Mode         *Mode         `json:"mode,omitempty"`
}

// Partial is one override layer. A nil section contributes nothing; a
// present section contributes exactly its non-nil fields.
type Partial struct {
	Background *BackgroundPartial `json:"background,omitempty"`
	Appearance *AppearancePartial `json:"appearance,omitempty"`
}
