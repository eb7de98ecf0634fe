package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	uitheme "github.com/appengine-ltd/worldmap/internal/ui/theme"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

type Theme struct {
	Background    rl.Color
	MapBackground rl.Color
	Panel         rl.Color
	Border        rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	TextMuted     rl.Color
	Accent        rl.Color
	Warning       rl.Color
	Danger        rl.Color

	Marker     rl.Color
	InfoPanel  rl.Color
	InfoButton rl.Color
	InfoText   rl.Color
}

const (
	spaceXS = uitheme.PaddingXS
	spaceS  = uitheme.PaddingS
	spaceM  = uitheme.PaddingM
	spaceL  = uitheme.PaddingL
)

var AppTheme = Theme{
	Background:    uitheme.BG,
	MapBackground: uitheme.FromNRGBA(worldmap.ColorBackground),
	Panel:         uitheme.Panel,
	Border:        uitheme.Border,
	TextPrimary:   uitheme.TextPrimary,
	TextSecondary: uitheme.TextSecondary,
	TextMuted:     uitheme.TextMuted,
	Accent:        uitheme.AccentCoast,
	Warning:       uitheme.WarningAmber,
	Danger:        uitheme.Danger,

	Marker:     uitheme.FromNRGBA(worldmap.ColorMarker),
	InfoPanel:  uitheme.FromNRGBA(worldmap.ColorInfoPanel),
	InfoButton: uitheme.FromNRGBA(worldmap.ColorButton),
	InfoText:   uitheme.FromNRGBA(worldmap.ColorText),
}

type ButtonState = uitheme.ButtonState

const (
	buttonStateNormal   = uitheme.ButtonNormal
	buttonStateHovered  = uitheme.ButtonHovered
	buttonStateDisabled = uitheme.ButtonDisabled
	buttonStateDanger   = uitheme.ButtonDanger
)

type ListItemState = uitheme.ListItemState

const (
	listStateNormal   = uitheme.ListItemNormal
	listStateHovered  = uitheme.ListItemHovered
	listStateSelected = uitheme.ListItemSelected
)

// DrawPanel draws a panel with an optional underlined title.
func DrawPanel(rect rl.Rectangle, title string, lifted bool) {
	variant := uitheme.PanelStandard
	if lifted {
		variant = uitheme.PanelLifted
	}
	uitheme.DrawPanel(rect, variant)
	if title != "" {
		uitheme.DrawHeader(title, int32(rect.X+spaceM), int32(rect.Y+spaceS))
	}
}

// DrawButton picks the hover state from the mouse unless the button is
// disabled.
func DrawButton(rect rl.Rectangle, text string, enabled bool) {
	state := buttonStateNormal
	switch {
	case !enabled:
		state = buttonStateDisabled
	case rl.CheckCollisionPointRec(rl.GetMousePosition(), rect):
		state = buttonStateHovered
	}
	uitheme.DrawButton(rect, state, text)
}

func DrawDangerButton(rect rl.Rectangle, text string) {
	uitheme.DrawButton(rect, buttonStateDanger, text)
}

// clicked reports a left click released over rect this frame.
func clicked(rect rl.Rectangle) bool {
	return rl.IsMouseButtonReleased(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(rl.GetMousePosition(), rect)
}

func DrawListItem(rect rl.Rectangle, state ListItemState, label, detail string) {
	uitheme.DrawListItem(rect, state, label, detail)
}

func DrawInputField(rect rl.Rectangle, text, placeholder string, focused bool) {
	uitheme.DrawInput(rect, text, placeholder, focused)
}

func DrawHintText(text string, x, y int32) {
	uitheme.DrawHintText(text, x, y)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	uitheme.DrawDivider(x1, y1, x2, y2)
}

func DrawLabelValue(label, value string, x, y int32, valueColor rl.Color) {
	drawText(label, x, y, typeScale.Body, AppTheme.TextSecondary)
	drawText(value, x+110, y, typeScale.Body, valueColor)
}
