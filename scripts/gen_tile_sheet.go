//go:build ignore

// gen_tile_sheet.go, run with:
//
//	go run scripts/gen_tile_sheet.go
//
// Writes assets/tiles/world_spritesheet.png: four 32x32 frames in a row
// (land, sand, water, unknown) using the map palette, each with a darker
// one-pixel edge so neighbouring tiles stay distinguishable. Replace with
// real art at any time; only the frame order matters.
package main

import (
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/snapshot"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

const frameSize = 32

func main() {
	out := filepath.Join("assets", "tiles", "world_spritesheet.png")
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, frameSize*region.FrameCount, frameSize))
	for frame := 0; frame < region.FrameCount; frame++ {
		fill := worldmap.FrameColor(frame)
		edge := shade(fill, 0.7)
		for y := 0; y < frameSize; y++ {
			for x := 0; x < frameSize; x++ {
				c := fill
				if x == 0 || y == 0 || x == frameSize-1 || y == frameSize-1 {
					c = edge
				}
				sheet.SetNRGBA(frame*frameSize+x, y, c)
			}
		}
	}

	if err := snapshot.WriteFile(out, sheet); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d frames of %dx%d)", out, region.FrameCount, frameSize, frameSize)
}

func shade(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
