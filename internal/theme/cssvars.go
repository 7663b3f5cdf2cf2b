// internal/theme/cssvars.go
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Style variable names consumed by the rendering layer.
const (
	VarBackgroundImage        = "--ink-bg-image"
	VarBackgroundVideoDisplay = "--ink-bg-video-display"
	VarBackgroundOpacity      = "--ink-bg-opacity"
	VarBackgroundBlur         = "--ink-bg-blur"
	VarBackgroundOverlay      = "--ink-bg-overlay"
	VarPrimaryRGB             = "--ink-primary-rgb"
	VarFontFamily             = "--ink-font-family"
	VarRadius                 = "--ink-radius"
)

// The primary color is exposed as an "R G B" triplet so the rendering layer
// can compose it with alpha (rgb(var(--ink-primary-rgb) / 0.4)).
const defaultPrimaryTriplet = "59 130 246" // #3b82f6

var radiusValues = map[BorderRadius]string{
	RadiusSM:   "0.125rem",
	RadiusMD:   "0.375rem",
	RadiusLG:   "0.5rem",
	RadiusXL:   "0.75rem",
	Radius2XL:  "1rem",
	RadiusFull: "9999px",
}

// RenderState is the presentation-boundary projection of a Config: named
// style variables plus the dark-mode toggle.
type RenderState struct {
	Variables map[string]string
	DarkMode  bool
}

// Render translates an effective configuration into style variables. The
// translation is deterministic; a malformed primary color falls back to the
// default triplet instead of failing.
func Render(cfg Config) RenderState {
	vars := make(map[string]string, 8)

	if cfg.Background.Type == BackgroundVideo {
		vars[VarBackgroundImage] = "none"
		vars[VarBackgroundVideoDisplay] = "block"
	} else {
		vars[VarBackgroundImage] = fmt.Sprintf("url(%s)", cfg.Background.URL)
		vars[VarBackgroundVideoDisplay] = "none"
	}
	vars[VarBackgroundOpacity] = strconv.FormatFloat(cfg.Background.Opacity, 'f', -1, 64)
	vars[VarBackgroundBlur] = strconv.Itoa(cfg.Background.Blur) + "px"
	if cfg.Background.Overlay != "" {
		vars[VarBackgroundOverlay] = cfg.Background.Overlay
	}

	vars[VarPrimaryRGB] = RGBTriplet(cfg.Appearance.PrimaryColor)
	vars[VarFontFamily] = cfg.Appearance.FontFamily
	if radius, ok := radiusValues[cfg.Appearance.BorderRadius]; ok {
		vars[VarRadius] = radius
	} else {
		vars[VarRadius] = radiusValues[RadiusXL]
	}

	return RenderState{
		Variables: vars,
		DarkMode:  cfg.Appearance.Mode == ModeDark,
	}
}

// RGBTriplet converts a #RRGGBB color into an "R G B" decimal triplet,
// falling back to the default primary triplet for malformed input.
func RGBTriplet(hexColor string) string {
	trimmed := strings.TrimSpace(hexColor)
	if !hexColorRegex.MatchString(trimmed) {
		return defaultPrimaryTriplet
	}
	value, err := strconv.ParseUint(trimmed[1:], 16, 32)
	if err != nil {
		return defaultPrimaryTriplet
	}
	return fmt.Sprintf("%d %d %d", (value>>16)&0xFF, (value>>8)&0xFF, value&0xFF)
}
