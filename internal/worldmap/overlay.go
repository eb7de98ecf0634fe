package worldmap

import (
	"fmt"

	"github.com/appengine-ltd/worldmap/internal/region"
)

const (
	loadingText     = "Loading..."
	expandLabelText = "Expand Map around "
)

// TextMeasurer reports the rendered size of a block of lines. The GUI and
// snapshot renderers supply one backed by their real fonts.
type TextMeasurer interface {
	MeasureLines(lines []string) (w, h float32)
}

// MonoMeasurer sizes text as a fixed-pitch font.
type MonoMeasurer struct {
	CharWidth  float32
	LineHeight float32
}

func DefaultMeasurer() MonoMeasurer {
	return MonoMeasurer{CharWidth: 10, LineHeight: 18}
}

func (m MonoMeasurer) MeasureLines(lines []string) (float32, float32) {
	widest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > widest {
			widest = n
		}
	}
	return float32(widest) * m.CharWidth, float32(len(lines)) * m.LineHeight
}

type OverlayState int

const (
	OverlayLoading OverlayState = iota
	OverlayReady
	OverlayFailed
)

func (s OverlayState) String() string {
	switch s {
	case OverlayLoading:
		return "loading"
	case OverlayReady:
		return "ready"
	case OverlayFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type TextBox struct {
	Lines  []string
	Bounds Rect
}

// InfoOverlay is the detail card for the last selected tile. Button and
// Background stay nil until the region detail has arrived.
type InfoOverlay struct {
	Region     region.Region
	Range      int
	State      OverlayState
	Text       TextBox
	Button     *TextBox
	Background *Rect
	Err        error
}

func newLoadingOverlay(r region.Region, rng int, at Point, m TextMeasurer) *InfoOverlay {
	return &InfoOverlay{
		Region: r,
		Range:  rng,
		State:  OverlayLoading,
		Text:   layoutText([]string{loadingText}, at, m),
	}
}

// fill lays out the loaded card: text at the region's position, the button
// under the text's bottom-left corner, and a background spanning both.
func (o *InfoOverlay) fill(detail region.Region, m TextMeasurer) {
	at := Point{X: o.Text.Bounds.X, Y: o.Text.Bounds.Y}
	o.State = OverlayReady
	o.Err = nil
	o.Text = layoutText(region.InfoLines(detail), at, m)
	button := layoutText([]string{expandLabelText + detail.Name}, Point{X: at.X, Y: o.Text.Bounds.Bottom()}, m)
	o.Button = &button

	right := o.Text.Bounds.Right()
	if button.Bounds.Right() > right {
		right = button.Bounds.Right()
	}
	o.Background = &Rect{
		X: at.X,
		Y: at.Y,
		W: right - at.X,
		H: button.Bounds.Bottom() - at.Y,
	}
}

func (o *InfoOverlay) fail(err error, m TextMeasurer) {
	at := Point{X: o.Text.Bounds.X, Y: o.Text.Bounds.Y}
	o.State = OverlayFailed
	o.Err = err
	o.Text = layoutText([]string{fmt.Sprintf("Failed to load region: %v", err)}, at, m)
	o.Button = nil
	o.Background = nil
}

func layoutText(lines []string, at Point, m TextMeasurer) TextBox {
	w, h := m.MeasureLines(lines)
	return TextBox{Lines: lines, Bounds: Rect{X: at.X, Y: at.Y, W: w, H: h}}
}
