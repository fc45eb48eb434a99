// Package theme holds the colours and ttk styles of the follower window.
package theme

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg      = "#f7f9fb"
	ColorPrimary = "#2563eb"
	ColorDanger  = "#dc2626"
	// ColorKeyed is painted where a window should be see-through.
	ColorKeyed = "#008080"
)

// HUD flag colours.
const (
	ColorOn  = "#15803d"
	ColorOff = "#b91c1c"
)

const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
)

// FlagColor returns ColorOn or ColorOff.
func FlagColor(on bool) string {
	if on {
		return ColorOn
	}
	return ColorOff
}

// InitStyles activates the base theme and fills the command buttons with
// their semantic colour.
func InitStyles() {
	_ = ActivateTheme("azure light")
	App.Configure(Background(ColorBg))
	for style, bg := range map[string]string{
		StylePrimaryButton: ColorPrimary,
		StyleDangerButton:  ColorDanger,
	} {
		StyleConfigure(style, Background(bg), Foreground("white"), Padding("4p 2p"))
	}
}
