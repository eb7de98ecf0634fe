package worldmap

import (
	"image/color"

	"github.com/appengine-ltd/worldmap/internal/region"
)

// Colours shared by every renderer. Frame colours stand in for sprite art
// when no tile sheet is available.
var (
	ColorLand       = color.NRGBA{R: 0x5b, G: 0x9e, B: 0x4a, A: 0xff}
	ColorSand       = color.NRGBA{R: 0xd9, G: 0xc2, B: 0x7f, A: 0xff}
	ColorWater      = color.NRGBA{R: 0x2f, G: 0x6f, B: 0xb8, A: 0xff}
	ColorUnknown    = color.NRGBA{R: 0x6e, G: 0x6e, B: 0x6e, A: 0xff}
	ColorBackground = color.NRGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xff}
	ColorMarker     = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	ColorHoverTint  = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	ColorInfoPanel  = color.NRGBA{R: 0x87, G: 0x91, B: 0x8e, A: 0x9b}
	ColorButton     = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x99, A: 0xff}
	ColorText       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func FrameColor(frame int) color.NRGBA {
	switch frame {
	case region.FrameLand:
		return ColorLand
	case region.FrameSand:
		return ColorSand
	case region.FrameWater:
		return ColorWater
	default:
		return ColorUnknown
	}
}

// Tint multiplies c by t per channel, the way sprite tinting works.
func Tint(c, t color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(uint16(c.R) * uint16(t.R) / 0xff),
		G: uint8(uint16(c.G) * uint16(t.G) / 0xff),
		B: uint8(uint16(c.B) * uint16(t.B) / 0xff),
		A: c.A,
	}
}
