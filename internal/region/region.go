package region

import (
	"strconv"
	"strings"
)

type Type string

const (
	TypeWater Type = "water"
	TypeSand  Type = "sand"
	TypeGrass Type = "grass"
	TypeSnow  Type = "snow"
)

// Sprite sheet frames for world_spritesheet.png.
const (
	FrameLand    = 0
	FrameSand    = 1
	FrameWater   = 2
	FrameUnknown = 3

	FrameCount = 4
)

// Region is one named grid cell as served by the regions API.
type Region struct {
	ID   string `json:"_id,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
	Type Type   `json:"type"`
}

func KnownTypes() []Type {
	return []Type{TypeWater, TypeSand, TypeGrass, TypeSnow}
}

// ParseType accepts any casing. Unknown values are returned as-is so the
// server can keep adding terrain kinds.
func ParseType(raw string) Type {
	raw = strings.TrimSpace(raw)
	for _, t := range KnownTypes() {
		if strings.EqualFold(raw, string(t)) {
			return t
		}
	}
	return Type(raw)
}

// Frame maps a terrain type to its sprite frame. Anything outside the known
// set, including the empty type, uses FrameUnknown.
func Frame(t Type) int {
	switch t {
	case TypeWater:
		return FrameWater
	case TypeSand:
		return FrameSand
	case TypeGrass, TypeSnow:
		return FrameLand
	default:
		return FrameUnknown
	}
}

func InfoLines(r Region) []string {
	return []string{
		"Name: " + r.Name,
		"Type: " + string(r.Type),
		"X: " + strconv.Itoa(r.X),
		"Y: " + strconv.Itoa(r.Y),
	}
}

// Label is the short form used in lists.
func (r Region) Label() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = "(unnamed)"
	}
	return name + " (" + strconv.Itoa(r.X) + "," + strconv.Itoa(r.Y) + ")"
}
