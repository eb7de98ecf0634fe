package worldmap

import (
	"strings"
	"testing"

	"github.com/appengine-ltd/worldmap/internal/region"
)

func bay() region.Region {
	return region.Region{ID: "b", Name: "Bay", Type: region.TypeWater, X: 6, Y: 5}
}

func newTestScene(t *testing.T, run Runner, world ...region.Region) (*Scene, *fakeClient) {
	t.Helper()
	client := newFakeClient(world...)
	s := NewScene(client, SceneOptions{Runner: run, Width: 800, Height: 600})
	t.Cleanup(s.Close)
	return s, client
}

func TestViewportCenterOn(t *testing.T) {
	v := NewViewport(800, 600)
	v.CenterOn(5, 5)
	if v.ScrollX != -240 || v.ScrollY != -140 {
		t.Fatalf("expected scroll (-240,-140), got (%v,%v)", v.ScrollX, v.ScrollY)
	}
}

func TestViewportPanFollowsPointer(t *testing.T) {
	v := NewViewport(800, 600)
	v.Pan(Point{X: 100, Y: 100}, Point{X: 110, Y: 90})
	if v.ScrollX != -5 || v.ScrollY != 5 {
		t.Fatalf("expected scroll (-5,5), got (%v,%v)", v.ScrollX, v.ScrollY)
	}
}

func TestViewportScreenWorldRoundTrip(t *testing.T) {
	v := NewViewport(800, 600)
	v.CenterOn(3, -2)
	center := v.ScreenToWorld(Point{X: 400, Y: 300})
	if center.X != 96 || center.Y != -64 {
		t.Fatalf("expected screen centre over tile (3,-2), got %+v", center)
	}
	back := v.WorldToScreen(Point{X: 120, Y: -40})
	world := v.ScreenToWorld(back)
	if world.X != 120 || world.Y != -40 {
		t.Fatalf("expected round trip to (120,-40), got %+v", world)
	}
}

func TestFetchRegionsBuildsTilesAndMarker(t *testing.T) {
	world := []region.Region{
		{ID: "a", Type: region.TypeGrass, X: 1, Y: 1},
		{ID: "b", Type: region.TypeSand, X: 2, Y: 1},
		{ID: "c", Type: "lava", X: 1, Y: 2},
	}
	s, client := newTestScene(t, syncRunner, world...)

	s.FetchRegions(1, 1, 5, false)
	if !s.Loading() {
		t.Fatalf("expected scene to report loading before poll")
	}
	s.Poll()

	if got := client.Calls(); len(got) != 1 || got[0] != "chunk 1,1,5" {
		t.Fatalf("expected one chunk call, got %v", got)
	}
	objs := s.Objects()
	if n := countKind(objs, KindTile); n != 3 {
		t.Fatalf("expected 3 tiles, got %d", n)
	}
	wantFrames := map[string]int{"a": region.FrameLand, "b": region.FrameSand, "c": region.FrameUnknown}
	for _, o := range objs {
		if o.Kind != KindTile {
			continue
		}
		if o.Frame != wantFrames[o.Region.ID] {
			t.Fatalf("expected frame %d for %s, got %d", wantFrames[o.Region.ID], o.Region.ID, o.Frame)
		}
		if o.Depth != DepthTile {
			t.Fatalf("expected tile depth %d, got %d", DepthTile, o.Depth)
		}
	}
	marker, ok := s.Marker()
	if !ok || marker.Pos != (Point{X: 32, Y: 32}) {
		t.Fatalf("expected marker on the centre cell, got %+v (%v)", marker, ok)
	}
	if s.View().ScrollX != 0 || s.View().ScrollY != 0 {
		t.Fatalf("expected camera untouched without centering")
	}
}

func TestFetchRegionsCentersCamera(t *testing.T) {
	s, _ := newTestScene(t, syncRunner)
	s.FetchRegions(5, 5, 15, true)
	if v := s.View(); v.ScrollX != -240 || v.ScrollY != -140 {
		t.Fatalf("expected camera centred on (5,5), got (%v,%v)", v.ScrollX, v.ScrollY)
	}
}

func TestOnlyOneMarkerExists(t *testing.T) {
	s, _ := newTestScene(t, syncRunner, region.Region{ID: "a", X: 1, Y: 1}, region.Region{ID: "b", X: 4, Y: 6})
	s.FetchRegions(1, 1, 5, false)
	s.Poll()
	s.FetchRegions(4, 6, 5, false)
	s.Poll()

	objs := s.Objects()
	if n := countKind(objs, KindMarker); n != 1 {
		t.Fatalf("expected exactly one marker, got %d", n)
	}
	marker, _ := findKind(objs, KindMarker)
	if marker.Depth != DepthMarker {
		t.Fatalf("expected marker depth %d, got %d", DepthMarker, marker.Depth)
	}
	if marker.Bounds != (Rect{X: 112, Y: 176, W: 32, H: 32}) {
		t.Fatalf("expected marker over (4,6), got %+v", marker.Bounds)
	}
}

func TestStaleChunkResponseIsDropped(t *testing.T) {
	held := &heldRunner{}
	s, _ := newTestScene(t, held.run,
		region.Region{ID: "near", X: 0, Y: 0},
		region.Region{ID: "far", X: 100, Y: 100},
	)
	s.FetchRegions(0, 0, 5, false)
	s.FetchRegions(100, 100, 5, false)

	held.release(1)
	s.Poll()
	held.release(0)
	s.Poll()

	tiles := s.Tiles()
	if tiles.Center != (GridPoint{X: 100, Y: 100}) || tiles.Len() != 1 || tiles.Tiles[0].Region.ID != "far" {
		t.Fatalf("expected the newer chunk to win, got %+v", tiles)
	}
	if s.Loading() {
		t.Fatalf("expected loading to finish")
	}
}

func TestChunkFailureKeepsTilesAndReportsStatus(t *testing.T) {
	s, client := newTestScene(t, syncRunner, region.Region{ID: "a", X: 0, Y: 0})
	s.FetchRegions(0, 0, 5, false)
	s.Poll()

	client.fail["chunk 9,9,5"] = errBoom
	s.FetchRegions(9, 9, 5, false)
	s.Poll()

	if s.Tiles().Len() != 1 {
		t.Fatalf("expected previous tiles to stay, got %d", s.Tiles().Len())
	}
	msg, err := s.Status()
	if err == nil || !strings.Contains(msg, "boom") {
		t.Fatalf("expected visible failure status, got %q (%v)", msg, err)
	}
}

func TestClickSelectsTileAndLaysOutInfoBox(t *testing.T) {
	s, client := newTestScene(t, syncRunner, bay())
	s.FetchRegions(6, 5, 15, false)
	s.Poll()

	// Screen (10,10) maps to world (205,155), inside the tile at (6,5).
	s.PointerDown(Point{X: 10, Y: 10})
	s.PointerUp(Point{X: 10, Y: 10})

	o, ok := s.Overlay()
	if !ok || o.State != OverlayLoading || o.Text.Lines[0] != loadingText {
		t.Fatalf("expected a loading card, got %+v (%v)", o, ok)
	}
	if o.Button != nil || o.Background != nil {
		t.Fatalf("expected no button or background while loading")
	}
	s.Poll()

	calls := client.Calls()
	if calls[len(calls)-1] != "get b" {
		t.Fatalf("expected detail fetch for b, got %v", calls)
	}
	o, _ = s.Overlay()
	if o.State != OverlayReady {
		t.Fatalf("expected ready card, got %v", o.State)
	}
	if o.Text.Bounds != (Rect{X: 192, Y: 160, W: 110, H: 72}) {
		t.Fatalf("unexpected text bounds %+v", o.Text.Bounds)
	}
	if o.Button == nil || o.Button.Lines[0] != "Expand Map around Bay" {
		t.Fatalf("unexpected button %+v", o.Button)
	}
	if o.Button.Bounds != (Rect{X: 192, Y: 232, W: 210, H: 18}) {
		t.Fatalf("unexpected button bounds %+v", o.Button.Bounds)
	}
	if *o.Background != (Rect{X: 192, Y: 160, W: 210, H: 90}) {
		t.Fatalf("unexpected background %+v", *o.Background)
	}
	marker, _ := s.Marker()
	if marker.Pos != (Point{X: 192, Y: 160}) {
		t.Fatalf("expected marker moved to the clicked tile, got %+v", marker.Pos)
	}
}

func TestDragDoesNotSelect(t *testing.T) {
	s, _ := newTestScene(t, syncRunner, bay())
	s.FetchRegions(6, 5, 15, false)
	s.Poll()

	s.PointerDown(Point{X: 10, Y: 10})
	s.PointerMove(Point{X: 40, Y: 10})
	s.PointerUp(Point{X: 40, Y: 10})

	if _, ok := s.Overlay(); ok {
		t.Fatalf("expected no selection after a drag")
	}
	if v := s.View(); v.ScrollX != -15 {
		t.Fatalf("expected the drag to pan by -15, got %v", v.ScrollX)
	}
}

func TestOnlyOneInfoBoxAndLatestSelectionWins(t *testing.T) {
	held := &heldRunner{}
	a := region.Region{ID: "a", Name: "Alpha", X: 6, Y: 5}
	b := region.Region{ID: "b", Name: "Beta", X: 7, Y: 5}
	s, _ := newTestScene(t, held.run, a, b)
	s.FetchRegions(6, 5, 15, false)
	held.releaseAll()
	s.Poll()

	s.DrawInfoBox(a, 15)
	s.DrawInfoBox(b, 15)
	held.release(1)
	s.Poll()
	held.release(0)
	s.Poll()

	objs := s.Objects()
	for _, kind := range []ObjectKind{KindInfoBackground, KindInfoText, KindInfoButton} {
		if n := countKind(objs, kind); n != 1 {
			t.Fatalf("expected one %v, got %d", kind, n)
		}
	}
	text, _ := findKind(objs, KindInfoText)
	if text.Lines[0] != "Name: Beta" {
		t.Fatalf("expected card for Beta, got %v", text.Lines)
	}
}

func TestInfoBoxFailureShowsMessage(t *testing.T) {
	s, _ := newTestScene(t, syncRunner)
	s.DrawInfoBox(region.Region{ID: "missing", X: 1, Y: 1}, 15)
	s.Poll()

	o, ok := s.Overlay()
	if !ok || o.State != OverlayFailed {
		t.Fatalf("expected failed card, got %+v", o)
	}
	if !strings.HasPrefix(o.Text.Lines[0], "Failed to load region:") {
		t.Fatalf("unexpected failure text %q", o.Text.Lines[0])
	}
	if countKind(s.Objects(), KindInfoButton) != 0 {
		t.Fatalf("expected no expand button on failure")
	}
}

func TestExpandButtonRecentersAndFetches(t *testing.T) {
	s, client := newTestScene(t, syncRunner, bay())
	s.FetchRegions(6, 5, 12, false)
	s.Poll()
	s.PointerDown(Point{X: 10, Y: 10})
	s.PointerUp(Point{X: 10, Y: 10})
	s.Poll()

	// World (200,240) sits on the button; at scroll 0 that is screen (0,180).
	s.PointerDown(Point{X: 0, Y: 180})
	s.PointerUp(Point{X: 0, Y: 180})
	s.Poll()

	calls := client.Calls()
	if calls[len(calls)-1] != "chunk 6,5,12" {
		t.Fatalf("expected refetch around (6,5) with range 12, got %v", calls)
	}
	if v := s.View(); v.ScrollX != -208 || v.ScrollY != -140 {
		t.Fatalf("expected camera centred on (6,5), got (%v,%v)", v.ScrollX, v.ScrollY)
	}
}

func TestInfoTextOpensRegion(t *testing.T) {
	s, _ := newTestScene(t, syncRunner, bay())
	var opened []string
	s.SetNavigator(NavigatorFunc(func(id string) { opened = append(opened, id) }))
	s.FetchRegions(6, 5, 15, false)
	s.Poll()

	// A loading card is not clickable.
	s.DrawInfoBox(bay(), 15)
	s.PointerDown(Point{X: 0, Y: 40})
	s.PointerUp(Point{X: 0, Y: 40})
	if len(opened) != 0 {
		t.Fatalf("expected loading text to ignore clicks, got %v", opened)
	}
	s.Poll()

	// World (200,170) is inside the text block.
	s.PointerDown(Point{X: 0, Y: 40})
	s.PointerUp(Point{X: 0, Y: 40})
	if len(opened) != 1 || opened[0] != "b" {
		t.Fatalf("expected navigation to b, got %v", opened)
	}
}

func TestHoverTintsTileUnderPointer(t *testing.T) {
	s, _ := newTestScene(t, syncRunner, bay(), region.Region{ID: "c", X: 7, Y: 5})
	s.FetchRegions(6, 5, 15, false)
	s.Poll()

	s.PointerMove(Point{X: 10, Y: 10})
	tile, ok := s.Hovered()
	if !ok || tile.Region.ID != "b" {
		t.Fatalf("expected hover on b, got %+v (%v)", tile, ok)
	}
	hovered := 0
	for _, o := range s.Objects() {
		if o.Hovered {
			hovered++
		}
	}
	if hovered != 1 {
		t.Fatalf("expected one tinted tile, got %d", hovered)
	}

	s.PointerLeave()
	if _, ok := s.Hovered(); ok {
		t.Fatalf("expected hover cleared")
	}
}

func TestObjectsAreDepthOrdered(t *testing.T) {
	s, _ := newTestScene(t, syncRunner, bay())
	s.FetchRegions(6, 5, 15, false)
	s.Poll()
	s.DrawInfoBox(bay(), 15)
	s.Poll()

	objs := s.Objects()
	for i := 1; i < len(objs); i++ {
		if objs[i].Depth < objs[i-1].Depth {
			t.Fatalf("display list out of order at %d: %v after %v", i, objs[i].Kind, objs[i-1].Kind)
		}
	}
	last := objs[len(objs)-1]
	if last.Kind != KindInfoButton {
		t.Fatalf("expected the button drawn last, got %v", last.Kind)
	}
}
