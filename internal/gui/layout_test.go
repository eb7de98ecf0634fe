package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

func TestMapScreenLayoutSplitsMapAndSidebar(t *testing.T) {
	l := mapScreenLayout(1280, 760)
	if l.Map != rl.NewRectangle(12, 12, 906, 736) {
		t.Fatalf("unexpected map rect %+v", l.Map)
	}
	if l.Sidebar != rl.NewRectangle(928, 12, 340, 736) {
		t.Fatalf("unexpected sidebar rect %+v", l.Sidebar)
	}
	if l.Search.Y != 56 || l.Search.Width != 312 {
		t.Fatalf("unexpected search rect %+v", l.Search)
	}
	if l.List.Y != 100 || l.List.Height != 446 {
		t.Fatalf("expected list to fill the middle, got %+v", l.List)
	}
	if l.LoadMore.Y != 556 || l.RangeMinus.Y != 600 || l.Create.Y != 644 || l.Status.Y != 688 {
		t.Fatalf("unexpected bottom stack: load %.0f range %.0f create %.0f status %.0f", l.LoadMore.Y, l.RangeMinus.Y, l.Create.Y, l.Status.Y)
	}
	if l.RangeApply.X != 1092 || l.RangeApply.X+l.RangeApply.Width != l.Search.X+l.Search.Width {
		t.Fatalf("expected apply button to end at the sidebar edge, got %+v", l.RangeApply)
	}
	if got := listCapacity(l.List); got != 13 {
		t.Fatalf("expected 13 visible rows, got %d", got)
	}
}

func TestMapScreenLayoutNeverGoesNegative(t *testing.T) {
	l := mapScreenLayout(200, 150)
	if l.Map.Width != 0 {
		t.Fatalf("expected a collapsed map, got width %.1f", l.Map.Width)
	}
	if l.List.Height != 0 || listCapacity(l.List) != 0 {
		t.Fatalf("expected an empty list area, got %+v", l.List)
	}
}

func TestListRowAtHonoursScroll(t *testing.T) {
	list := rl.NewRectangle(0, 100, 300, 340)
	if got := listRowAt(list, 100+34*2+5, 3, 10); got != 5 {
		t.Fatalf("expected row 5, got %d", got)
	}
	if got := listRowAt(list, 99, 0, 10); got != -1 {
		t.Fatalf("expected -1 above the list, got %d", got)
	}
	if got := listRowAt(list, 100+34*2+5, 3, 4); got != -1 {
		t.Fatalf("expected -1 past the last entry, got %d", got)
	}
}

func TestClampScroll(t *testing.T) {
	cases := []struct {
		scroll, count, visible, want int
	}{
		{20, 10, 13, 0},
		{5, 30, 13, 5},
		{-2, 30, 13, 0},
		{40, 30, 13, 17},
	}
	for _, tc := range cases {
		if got := clampScroll(tc.scroll, tc.count, tc.visible); got != tc.want {
			t.Fatalf("clampScroll(%d,%d,%d): expected %d, got %d", tc.scroll, tc.count, tc.visible, tc.want, got)
		}
	}
}

func TestDetailScreenLayoutCentresPanel(t *testing.T) {
	d := detailScreenLayout(1280, 760)
	if d.Panel != rl.NewRectangle(360, 185, 560, 390) {
		t.Fatalf("unexpected panel %+v", d.Panel)
	}
	if d.Rows[0].Y != 239 || d.Rows[3].Y != 359 {
		t.Fatalf("unexpected rows %.0f..%.0f", d.Rows[0].Y, d.Rows[3].Y)
	}
	if d.Save.Y != 409 || d.Delete.Y != 453 || d.Save.Width != 255 || d.ShowMap.X != 645 {
		t.Fatalf("unexpected buttons save %+v show %+v delete %+v", d.Save, d.ShowMap, d.Delete)
	}

	small := detailScreenLayout(400, 300)
	if small.Panel.X != 12 || small.Panel.Width != 376 || small.Panel.Y != 12 {
		t.Fatalf("expected panel clamped to the window, got %+v", small.Panel)
	}
}

func TestParseQuery(t *testing.T) {
	name, typ := parseQuery("type:Water North  Bay")
	if name != "North Bay" || typ != region.TypeWater {
		t.Fatalf("expected North Bay/water, got %q/%q", name, typ)
	}
	name, typ = parseQuery("type:lava")
	if name != "" || typ != "lava" {
		t.Fatalf("expected unknown type kept, got %q/%q", name, typ)
	}
	name, typ = parseQuery("  ")
	if name != "" || typ != "" {
		t.Fatalf("expected empty query, got %q/%q", name, typ)
	}
}

func TestSidebarEntries(t *testing.T) {
	loaded := []region.Region{
		{ID: "a", Name: "Alpha", Type: region.TypeWater},
		{ID: "b", Name: "Beta", Type: region.TypeSand},
		{ID: "c", Name: "Alphabet", Type: region.TypeGrass},
	}
	server := []region.Region{{ID: "s", Name: "From server"}}

	if got := sidebarEntries(loaded, server, false, ""); len(got) != 3 {
		t.Fatalf("expected every loaded region, got %d", len(got))
	}
	if got := sidebarEntries(loaded, server, false, "type:sand"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only the sand region, got %+v", got)
	}
	got := sidebarEntries(loaded, server, false, "alpha")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("expected exact then prefix match, got %+v", got)
	}
	if got := sidebarEntries(loaded, server, true, "alpha"); len(got) != 1 || got[0].ID != "s" {
		t.Fatalf("expected server results after submit, got %+v", got)
	}
	if got := sidebarEntries(loaded, []region.Region{}, true, "alpha"); len(got) != 0 {
		t.Fatalf("expected an empty server result to stay empty, got %+v", got)
	}
}

func TestCycleType(t *testing.T) {
	if got := cycleType(region.TypeWater, 1); got != region.TypeSand {
		t.Fatalf("expected sand, got %q", got)
	}
	if got := cycleType(region.TypeWater, -1); got != region.TypeSnow {
		t.Fatalf("expected wrap to snow, got %q", got)
	}
	if got := cycleType("lava", 1); got != region.TypeWater {
		t.Fatalf("expected unknown type to restart at water, got %q", got)
	}
}

func TestWrapIndex(t *testing.T) {
	if got := wrapIndex(-1, 4); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := wrapIndex(9, 4); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := wrapIndex(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty size, got %d", got)
	}
}

func TestWrapLines(t *testing.T) {
	measure := func(s string) int32 { return int32(len(s) * 10) }
	got := wrapLines("one two three", 70, measure)
	if len(got) != 2 || got[0] != "one two" || got[1] != "three" {
		t.Fatalf("unexpected wrap %q", got)
	}
	got = wrapLines("supercalifragilistic", 50, measure)
	if len(got) != 1 {
		t.Fatalf("expected a long word on its own line, got %q", got)
	}
	if got := wrapLines("   ", 50, measure); got != nil {
		t.Fatalf("expected nil for blank text, got %q", got)
	}
}

func TestDetailStateEditing(t *testing.T) {
	var d detailState
	d.adjust(1)
	if d.dirty() {
		t.Fatalf("expected no change before load")
	}

	d.load(region.Region{ID: "r1", Name: "Cove", Type: region.TypeWater, X: 2, Y: 3})
	d.Cursor = detailRowType
	d.adjust(1)
	if d.Region.Type != region.TypeSand || !d.dirty() {
		t.Fatalf("expected type cycled to sand and dirty, got %+v", d.Region)
	}

	d.moveCursor(1)
	d.adjust(-1)
	if d.Cursor != detailRowX || d.Region.X != 1 {
		t.Fatalf("expected x stepped down on row %d, got %+v", d.Cursor, d.Region)
	}

	d.moveCursor(-3)
	if d.Cursor != detailRowY {
		t.Fatalf("expected cursor to wrap to the last row, got %d", d.Cursor)
	}

	d.beginNameEdit()
	d.NameBuffer = "Deep Cove"
	d.cancelNameEdit()
	if d.Region.Name != "Cove" || d.EditingName {
		t.Fatalf("expected cancel to keep the name, got %q", d.Region.Name)
	}
	d.beginNameEdit()
	d.NameBuffer = "Deep Cove"
	d.commitName()
	if d.Region.Name != "Deep Cove" {
		t.Fatalf("expected committed name, got %q", d.Region.Name)
	}

	d.load(d.Region)
	if d.dirty() {
		t.Fatalf("expected a saved region to be clean")
	}
}

func TestHotkeysFollowFocus(t *testing.T) {
	var ui mapUI
	if !HotkeysEnabled(&ui) {
		t.Fatalf("expected hotkeys on the map screen")
	}
	ui.side.SearchFocused = true
	if HotkeysEnabled(&ui) {
		t.Fatalf("expected hotkeys off while searching")
	}
	ui.screen = screenDetail
	if !HotkeysEnabled(&ui) {
		t.Fatalf("expected search focus to be ignored on the detail screen")
	}
	ui.detail.EditingName = true
	if HotkeysEnabled(&ui) {
		t.Fatalf("expected hotkeys off while editing the name")
	}
}

func TestSceneCameraCentresViewport(t *testing.T) {
	view := worldmap.NewViewport(800, 600)
	view.CenterOn(0, 0)
	cam := sceneCamera(view, rl.NewRectangle(12, 12, 800, 600))
	if cam.Target.X != 0 || cam.Target.Y != 0 {
		t.Fatalf("expected camera target at the origin tile, got %+v", cam.Target)
	}
	if cam.Offset.X != 412 || cam.Offset.Y != 312 {
		t.Fatalf("expected offset at the map centre, got %+v", cam.Offset)
	}
	if cam.Zoom != worldmap.DefaultZoom {
		t.Fatalf("expected zoom %v, got %v", worldmap.DefaultZoom, cam.Zoom)
	}
}
