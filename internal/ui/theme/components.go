package theme

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	PaddingXS = float32(6)
	PaddingS  = float32(10)
	PaddingM  = float32(14)
	PaddingL  = float32(20)

	CornerRadius   = float32(0.12)
	CornerSegments = int32(6)

	BorderWidth      = float32(1.0)
	BorderWidthFocus = float32(2.0)
	RowHeight        = float32(34)
	ButtonHeight     = float32(34)
	InputHeight      = float32(34)
	AccentStripWidth = float32(3)
)

type PanelVariant int

const (
	PanelStandard PanelVariant = iota
	PanelLifted
)

type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonHovered
	ButtonDisabled
	ButtonDanger
)

type ListItemState int

const (
	ListItemNormal ListItemState = iota
	ListItemHovered
	ListItemSelected
)

func DrawPanel(rect rl.Rectangle, variant PanelVariant) {
	fill := Panel
	stroke := Border
	if variant == PanelLifted {
		fill = PanelRaised
		stroke = mix(Border, AccentCoast, 0.3)
	}
	rl.DrawRectangleRounded(rect, CornerRadius/4, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius/4, CornerSegments, BorderWidth, stroke)
}

func DrawButton(rect rl.Rectangle, state ButtonState, text string) {
	fill := AccentSea
	stroke := mix(AccentSea, AccentCoast, 0.5)
	label := TextPrimary
	strokeWidth := BorderWidth

	switch state {
	case ButtonHovered:
		fill = mix(AccentSea, AccentCoast, 0.35)
		stroke = AccentCoast
		strokeWidth = BorderWidthFocus
	case ButtonDisabled:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.75)
		label = DisabledText
	case ButtonDanger:
		fill = Danger
		stroke = mix(Danger, TextPrimary, 0.3)
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)
	if text == "" {
		return
	}
	size := Type.Body
	w := measureText(text, size)
	drawText(text, int32(rect.X+(rect.Width-float32(w))/2), int32(rect.Y+(rect.Height-float32(size))/2), size, label)
}

// DrawListItem draws a row with a label on the left and a muted detail on
// the right.
func DrawListItem(rect rl.Rectangle, state ListItemState, label, detail string) {
	fill := rl.Fade(PanelRaised, 0.4)
	right := TextMuted
	switch state {
	case ListItemHovered:
		fill = PanelRaised
		right = TextSecondary
	case ListItemSelected:
		fill = PanelRaised
		right = AccentCoast
	}
	rl.DrawRectangleRec(rect, fill)
	if state == ListItemSelected {
		rl.DrawRectangleRec(rl.NewRectangle(rect.X, rect.Y+2, AccentStripWidth, rect.Height-4), AccentCoast)
	}

	textY := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	if detail != "" {
		w := measureText(detail, Type.Small)
		drawText(detail, int32(rect.X+rect.Width-PaddingS-float32(w)), textY+2, Type.Small, right)
	}
	if label != "" {
		drawText(label, int32(rect.X+PaddingM), textY, Type.Body, TextPrimary)
	}
}

// DrawInput draws a single-line text field. The placeholder shows only when
// the field is empty and not focused.
func DrawInput(rect rl.Rectangle, text, placeholder string, focused bool) {
	stroke := Border
	width := BorderWidth
	if focused {
		stroke = AccentCoast
		width = BorderWidthFocus
	}
	rl.DrawRectangleRec(rect, DisabledPanel)
	rl.DrawRectangleLinesEx(rect, width, stroke)

	textY := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	x := int32(rect.X + PaddingS)
	switch {
	case text != "":
		drawText(text, x, textY, Type.Body, TextPrimary)
	case !focused && placeholder != "":
		drawText(placeholder, x, textY, Type.Body, TextMuted)
	}
	if focused && (int(rl.GetTime()*2)%2 == 0) {
		caretX := float32(x + measureText(text, Type.Body) + 2)
		drawLine(caretX, rect.Y+6, caretX, rect.Y+rect.Height-6, 1.5, AccentCoast)
	}
}

func DrawHeader(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Header, TextPrimary)
	w := measureText(text, Type.Header)
	lineW := int32(float32(w) * 0.5)
	if lineW < 36 {
		lineW = 36
	}
	drawLine(float32(x), float32(y+Type.Header+4), float32(x+lineW), float32(y+Type.Header+4), 2.0, AccentCoast)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	drawLine(x1, y1, x2, y2, 1.0, Divider)
}

func DrawHintText(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Small, TextMuted)
}

func drawLine(x1, y1, x2, y2, thickness float32, clr rl.Color) {
	rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), thickness, clr)
}

func mix(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	inv := 1.0 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}
