// Package snapshot renders the map scene to a PNG without a window. It is
// used by headless builds and by the -snapshot flag.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

const DefaultFontSize = 16

type Renderer struct {
	fontSize float64
	sheet    image.Image
	frame    int
}

type Options struct {
	FontSize float64
	// Sheet is an optional horizontal strip of square tile frames.
	Sheet image.Image
}

func New(opts Options) *Renderer {
	size := opts.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	r := &Renderer{fontSize: size}
	if opts.Sheet != nil {
		b := opts.Sheet.Bounds()
		if b.Dx() >= region.FrameCount*b.Dy() && b.Dy() > 0 {
			r.sheet = opts.Sheet
			r.frame = b.Dy()
		}
	}
	return r
}

// LoadSheet decodes a PNG tile sheet.
func LoadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Measurer sizes text with the same face the renderer draws with at zoom 1.
func (r *Renderer) Measurer() worldmap.TextMeasurer {
	return faceMeasurer{face: resolveFace(r.fontSize)}
}

type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) MeasureLines(lines []string) (float32, float32) {
	widest := 0
	for _, line := range lines {
		if w := font.MeasureString(m.face, line).Ceil(); w > widest {
			widest = w
		}
	}
	return float32(widest), float32(len(lines) * m.face.Metrics().Height.Ceil())
}

// Render draws the scene's display list through its viewport.
func (r *Renderer) Render(scene *worldmap.Scene) *image.NRGBA {
	view := scene.View()
	img := image.NewNRGBA(image.Rect(0, 0, int(view.Width), int(view.Height)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: worldmap.ColorBackground}, image.Point{}, draw.Src)

	face := resolveFace(r.fontSize * float64(view.Zoom))
	for _, obj := range scene.Objects() {
		rect := screenRect(view, obj.Bounds)
		switch obj.Kind {
		case worldmap.KindTile:
			r.drawTile(img, rect, obj)
		case worldmap.KindMarker:
			fillRect(img, rect, worldmap.ColorMarker)
		case worldmap.KindInfoBackground:
			fillRect(img, rect, worldmap.ColorInfoPanel)
		case worldmap.KindInfoButton:
			fillRect(img, rect, worldmap.ColorButton)
			drawLines(img, obj.Lines, rect.Min, face)
		case worldmap.KindInfoText:
			drawLines(img, obj.Lines, rect.Min, face)
		}
	}
	return img
}

func (r *Renderer) drawTile(img *image.NRGBA, rect image.Rectangle, obj worldmap.Object) {
	if r.sheet == nil {
		c := worldmap.FrameColor(obj.Frame)
		if obj.Hovered {
			c = worldmap.Tint(c, worldmap.ColorHoverTint)
		}
		fillRect(img, rect, c)
		return
	}
	origin := r.sheet.Bounds().Min
	src := image.Rect(obj.Frame*r.frame, 0, (obj.Frame+1)*r.frame, r.frame).Add(origin)
	draw.NearestNeighbor.Scale(img, rect, r.sheet, src, draw.Over, nil)
	if obj.Hovered {
		// Red multiply: keep the red channel, drop green and blue.
		clipped := rect.Intersect(img.Bounds())
		for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
			for x := clipped.Min.X; x < clipped.Max.X; x++ {
				img.SetNRGBA(x, y, worldmap.Tint(img.NRGBAAt(x, y), worldmap.ColorHoverTint))
			}
		}
	}
}

func screenRect(view worldmap.Viewport, b worldmap.Rect) image.Rectangle {
	tl := view.WorldToScreen(worldmap.Point{X: b.X, Y: b.Y})
	br := view.WorldToScreen(worldmap.Point{X: b.Right(), Y: b.Bottom()})
	return image.Rect(
		int(math.Floor(float64(tl.X))),
		int(math.Floor(float64(tl.Y))),
		int(math.Ceil(float64(br.X))),
		int(math.Ceil(float64(br.Y))),
	)
}

func fillRect(img draw.Image, rect image.Rectangle, c color.NRGBA) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func drawLines(img draw.Image, lines []string, at image.Point, face font.Face) {
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(worldmap.ColorText), Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(at.X, at.Y+i*lineHeight+ascent)
		d.DrawString(line)
	}
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteFile writes img as a PNG file, creating parent directories.
func WriteFile(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var (
	fontOnce  sync.Once
	fontData  *opentype.Font
	fontErr   error
	faceMu    sync.Mutex
	faceCache = make(map[float64]font.Face)
)

// resolveFace returns Go Mono at size, or the built-in bitmap face if the
// embedded font cannot be parsed.
func resolveFace(size float64) font.Face {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(gomono.TTF)
	})
	if fontErr != nil || fontData == nil {
		return basicfont.Face7x13
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face
	}
	face, err := opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	faceCache[size] = face
	return face
}
