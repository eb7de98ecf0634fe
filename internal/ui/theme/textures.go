package theme

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

// Tiles is the loaded world sprite sheet. With no texture loaded DrawTile
// falls back to flat frame colours.
var Tiles tileSheet

type tileSheet struct {
	Tex   rl.Texture2D
	Frame float32

	loaded bool
}

// InitTiles loads a horizontal strip of square frames. Call once after
// rl.InitWindow(). A missing or undersized file leaves the flat fallback.
func InitTiles(path string) bool {
	if Tiles.loaded {
		return Tiles.Tex.ID != 0
	}
	Tiles.loaded = true
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return false
	}
	if tex.Height <= 0 || tex.Width < tex.Height*region.FrameCount {
		rl.UnloadTexture(tex)
		return false
	}
	rl.SetTextureFilter(tex, rl.FilterPoint)
	Tiles.Tex = tex
	Tiles.Frame = float32(tex.Height)
	return true
}

// UnloadTiles releases GPU texture memory. Call before rl.CloseWindow().
func UnloadTiles() {
	if Tiles.Tex.ID != 0 {
		rl.UnloadTexture(Tiles.Tex)
	}
	Tiles = tileSheet{}
}

// DrawTile draws one frame into dest. Hovered tiles get the red tint.
func DrawTile(frame int, dest rl.Rectangle, hovered bool) {
	tint := rl.White
	if hovered {
		tint = FromNRGBA(worldmap.ColorHoverTint)
	}
	if Tiles.Tex.ID == 0 {
		c := worldmap.FrameColor(frame)
		if hovered {
			c = worldmap.Tint(c, worldmap.ColorHoverTint)
		}
		rl.DrawRectangleRec(dest, FromNRGBA(c))
		return
	}
	src := rl.NewRectangle(float32(frame)*Tiles.Frame, 0, Tiles.Frame, Tiles.Frame)
	rl.DrawTexturePro(Tiles.Tex, src, dest, rl.Vector2{}, 0, tint)
}
