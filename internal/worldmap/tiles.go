package worldmap

import "github.com/appengine-ltd/worldmap/internal/region"

// Tile is one region placed on the grid. Pos is the tile centre in world
// pixels.
type Tile struct {
	Region region.Region
	Frame  int
	Pos    Point
	Size   float32
}

func (t Tile) Bounds() Rect {
	half := t.Size / 2
	return Rect{X: t.Pos.X - half, Y: t.Pos.Y - half, W: t.Size, H: t.Size}
}

// TileSet is the whole visible chunk. It is replaced, never patched, each
// time a chunk response is applied.
type TileSet struct {
	Center GridPoint
	Range  int
	Tiles  []Tile
}

func newTileSet(regions []region.Region, center GridPoint, rng, tileSize int) TileSet {
	tiles := make([]Tile, 0, len(regions))
	for _, r := range regions {
		tiles = append(tiles, Tile{
			Region: r,
			Frame:  region.Frame(r.Type),
			Pos:    Point{X: float32(r.X * tileSize), Y: float32(r.Y * tileSize)},
			Size:   float32(tileSize),
		})
	}
	return TileSet{Center: center, Range: rng, Tiles: tiles}
}

// hit returns the index of the topmost tile under p (later tiles draw over
// earlier ones), or -1.
func (ts TileSet) hit(p Point) int {
	for i := len(ts.Tiles) - 1; i >= 0; i-- {
		if ts.Tiles[i].Bounds().Contains(p) {
			return i
		}
	}
	return -1
}

func (ts TileSet) Len() int { return len(ts.Tiles) }
