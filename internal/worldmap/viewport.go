package worldmap

const (
	DefaultTileSize = 32
	DefaultZoom     = 2
	DefaultWidth    = 800
	DefaultHeight   = 600
)

type Point struct {
	X, Y float32
}

type GridPoint struct {
	X, Y int
}

type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Contains treats the right and bottom edges as outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Viewport is the camera over the world. Scroll is the world coordinate of
// the viewport's top-left corner at zoom 1; zoom scales about the centre.
type Viewport struct {
	ScrollX  float32
	ScrollY  float32
	Zoom     float32
	TileSize int
	Width    float32
	Height   float32
}

func NewViewport(width, height float32) Viewport {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return Viewport{
		Zoom:     DefaultZoom,
		TileSize: DefaultTileSize,
		Width:    width,
		Height:   height,
	}
}

// Pan moves the camera against the pointer motion so the world follows the
// cursor. There is no clamping.
func (v *Viewport) Pan(prev, cur Point) {
	v.ScrollX -= (cur.X - prev.X) / v.Zoom
	v.ScrollY -= (cur.Y - prev.Y) / v.Zoom
}

func (v *Viewport) CenterOn(x, y int) {
	v.ScrollX = float32(x*v.TileSize) - v.Width/2
	v.ScrollY = float32(y*v.TileSize) - v.Height/2
}

func (v *Viewport) Resize(width, height float32) {
	if width > 0 {
		v.Width = width
	}
	if height > 0 {
		v.Height = height
	}
}

func (v Viewport) ScreenToWorld(p Point) Point {
	return Point{
		X: (p.X-v.Width/2)/v.Zoom + v.ScrollX + v.Width/2,
		Y: (p.Y-v.Height/2)/v.Zoom + v.ScrollY + v.Height/2,
	}
}

func (v Viewport) WorldToScreen(p Point) Point {
	return Point{
		X: (p.X-v.ScrollX-v.Width/2)*v.Zoom + v.Width/2,
		Y: (p.Y-v.ScrollY-v.Height/2)*v.Zoom + v.Height/2,
	}
}

// TileOrigin is the world position of a grid cell's centre.
func (v Viewport) TileOrigin(x, y int) Point {
	return Point{X: float32(x * v.TileSize), Y: float32(y * v.TileSize)}
}
