package gui

import (
	"math"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	uitheme "github.com/appengine-ltd/worldmap/internal/ui/theme"
)

type typographyState struct {
	base  rl.Font
	owned bool
}

var (
	typeScale = uitheme.Type
	uiType    typographyState
)

func initTypography() {
	uiType.base = rl.GetFontDefault()

	fontCandidates := []string{
		filepath.Join("assets", "fonts", "JetBrainsMono-Regular.ttf"),
		filepath.Join("assets", "fonts", "DejaVuSansMono.ttf"),
		filepath.Join("assets", "fonts", "NotoSansMono-Regular.ttf"),
	}
	if f, ok := loadFontFromCandidates(fontCandidates, 32); ok {
		uiType.base = f
		uiType.owned = true
	}

	rl.SetTextureFilter(uiType.base.Texture, rl.FilterBilinear)
	uitheme.SetTextRenderer(uitheme.TextRenderer{Draw: drawText, Measure: measureText})
}

func shutdownTypography() {
	if uiType.owned && uiType.base.Texture.ID != 0 {
		rl.UnloadFont(uiType.base)
	}
	uiType = typographyState{}
}

func loadFontFromCandidates(candidates []string, fontSize int32) (rl.Font, bool) {
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		font := rl.LoadFontEx(path, fontSize, nil, 0)
		if font.Texture.ID == 0 {
			continue
		}
		return font, true
	}
	return rl.Font{}, false
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	drawTextF(text, float32(x), float32(y), fontSize, clr)
}

// drawTextF keeps sub-pixel positions, which matter for world text under a
// zoomed camera.
func drawTextF(text string, x, y float32, fontSize int32, clr rl.Color) {
	if uiType.base.Texture.ID == 0 {
		rl.DrawText(text, int32(x), int32(y), fontSize, clr)
		return
	}
	rl.DrawTextEx(uiType.base, text, rl.Vector2{X: x, Y: y}, float32(fontSize), 1, clr)
}

func measureText(text string, fontSize int32) int32 {
	if uiType.base.Texture.ID == 0 {
		return int32(rl.MeasureText(text, fontSize))
	}
	return int32(math.Round(float64(rl.MeasureTextEx(uiType.base, text, float32(fontSize), 1).X)))
}

func textLineHeight(size int32) int32 {
	return typeScale.LineHeight(size)
}

// sceneMeasurer sizes info card text with the loaded font so hit areas match
// what is drawn.
type sceneMeasurer struct {
	size int32
}

func (m sceneMeasurer) MeasureLines(lines []string) (float32, float32) {
	var widest int32
	for _, line := range lines {
		if w := measureText(line, m.size); w > widest {
			widest = w
		}
	}
	return float32(widest), float32(int32(len(lines)) * textLineHeight(m.size))
}

func wrapText(text string, size, width int32) []string {
	return wrapLines(text, width, func(s string) int32 { return measureText(s, size) })
}
