package theme

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Typography struct {
	Title      int32
	Header     int32
	Body       int32
	Small      int32
	Map        int32
	LineFactor float32
}

// Map is the size of text drawn inside the world, before camera zoom.
var Type = Typography{
	Title:      30,
	Header:     21,
	Body:       18,
	Small:      15,
	Map:        16,
	LineFactor: 1.25,
}

// LineHeight is the baseline-to-baseline distance for size, never below 1.
func (t Typography) LineHeight(size int32) int32 {
	if size < 1 {
		size = 1
	}
	return int32(math.Round(float64(size) * float64(t.LineFactor)))
}

// TextRenderer is how components draw and measure labels. The GUI installs
// one backed by its loaded font so sidebar text and info cards share metrics.
type TextRenderer struct {
	Draw    func(text string, x, y, size int32, clr rl.Color)
	Measure func(text string, size int32) int32
}

var renderer = TextRenderer{
	Draw: func(s string, x, y, size int32, clr rl.Color) {
		rl.DrawText(s, x, y, size, clr)
	},
	Measure: func(s string, size int32) int32 {
		return int32(rl.MeasureText(s, size))
	},
}

// SetTextRenderer replaces the fields that are set and returns the previous
// renderer.
func SetTextRenderer(r TextRenderer) TextRenderer {
	prev := renderer
	if r.Draw != nil {
		renderer.Draw = r.Draw
	}
	if r.Measure != nil {
		renderer.Measure = r.Measure
	}
	return prev
}

func drawText(s string, x, y, size int32, clr rl.Color) {
	renderer.Draw(s, x, y, size, clr)
}

func measureText(s string, size int32) int32 {
	return renderer.Measure(s, size)
}
