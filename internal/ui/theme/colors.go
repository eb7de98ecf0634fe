package theme

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Chart-table palette for the sidebar and dialogs.
var (
	BG            = rl.NewColor(0x10, 0x12, 0x16, 255) // #101216
	Panel         = rl.NewColor(0x1A, 0x20, 0x27, 255) // #1A2027
	PanelRaised   = rl.NewColor(0x22, 0x2A, 0x33, 255) // #222A33
	Border        = rl.NewColor(0x33, 0x3F, 0x4A, 255) // #333F4A
	Divider       = rl.NewColor(0x28, 0x31, 0x3A, 255) // #28313A
	TextPrimary   = rl.NewColor(0xE6, 0xE9, 0xEC, 255) // #E6E9EC
	TextSecondary = rl.NewColor(0xA3, 0xAE, 0xB8, 255) // #A3AEB8
	TextMuted     = rl.NewColor(0x74, 0x80, 0x8B, 255) // #74808B
	AccentSea     = rl.NewColor(0x3A, 0x3A, 0x99, 255) // #3A3A99
	AccentCoast   = rl.NewColor(0x4F, 0x9D, 0xC9, 255) // #4F9DC9
	WarningAmber  = rl.NewColor(0xC1, 0x8B, 0x2F, 255) // #C18B2F
	Danger        = rl.NewColor(0xC2, 0x4B, 0x3D, 255) // #C24B3D
	DisabledPanel = rl.NewColor(0x15, 0x19, 0x1E, 255)
	DisabledText  = TextMuted
)

// FromNRGBA converts a shared palette colour for raylib.
func FromNRGBA(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
