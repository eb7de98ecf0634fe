// Package worldmap holds the map screen's state: the camera, the tile grid
// fetched around a centre cell, the selection marker and the region info
// card. It has no rendering code; the GUI and the snapshot writer both draw
// from Scene.Objects.
package worldmap

import (
	"context"
	"fmt"
	"sort"

	"github.com/appengine-ltd/worldmap/internal/logging"
	"github.com/appengine-ltd/worldmap/internal/region"
)

const (
	DepthTile           = 0
	DepthMarker         = 9
	DepthInfoBackground = 10
	DepthInfoText       = 11
	DepthInfoButton     = 11
)

// ChunkSource is the part of the region API the map scene needs.
type ChunkSource interface {
	ListChunk(ctx context.Context, x, y, rng int) ([]region.Region, error)
	GetByID(ctx context.Context, id string) (region.Region, error)
}

// Navigator opens the detail view for a region.
type Navigator interface {
	OpenRegion(id string)
}

type NavigatorFunc func(id string)

func (f NavigatorFunc) OpenRegion(id string) { f(id) }

type Marker struct {
	Pos  Point
	Size float32
}

func (m Marker) Bounds() Rect {
	half := m.Size / 2
	return Rect{X: m.Pos.X - half, Y: m.Pos.Y - half, W: m.Size, H: m.Size}
}

type ObjectKind int

const (
	KindTile ObjectKind = iota
	KindMarker
	KindInfoBackground
	KindInfoText
	KindInfoButton
)

func (k ObjectKind) String() string {
	switch k {
	case KindTile:
		return "tile"
	case KindMarker:
		return "marker"
	case KindInfoBackground:
		return "info-background"
	case KindInfoText:
		return "info-text"
	case KindInfoButton:
		return "info-button"
	default:
		return "unknown"
	}
}

// Object is one entry of the display list, in world coordinates.
type Object struct {
	Kind    ObjectKind
	Depth   int
	Bounds  Rect
	Frame   int
	Hovered bool
	Lines   []string
	Region  region.Region
}

type SceneOptions struct {
	Runner    Runner
	Logger    *logging.Logger
	Measurer  TextMeasurer
	Navigator Navigator
	Width     float32
	Height    float32
}

type Scene struct {
	client  ChunkSource
	disp    *dispatcher
	ownDisp bool
	log     *logging.Logger
	measure TextMeasurer
	nav     Navigator

	view    Viewport
	tiles   TileSet
	hasGrid bool
	marker  *Marker
	overlay *InfoOverlay

	chunkGen   uint64
	overlayGen uint64
	loading    bool
	status     string
	err        error

	pointerDown bool
	pressAt     Point
	lastPointer Point
	hovered     int
}

func NewScene(client ChunkSource, opts SceneOptions) *Scene {
	s := newScene(client, newDispatcher(opts.Runner), opts)
	s.ownDisp = true
	return s
}

func newScene(client ChunkSource, disp *dispatcher, opts SceneOptions) *Scene {
	measure := opts.Measurer
	if measure == nil {
		measure = DefaultMeasurer()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Scene{
		client:  client,
		disp:    disp,
		log:     log,
		measure: measure,
		nav:     opts.Navigator,
		view:    NewViewport(opts.Width, opts.Height),
		hovered: -1,
	}
}

// SetNavigator replaces the handler for info text clicks.
func (s *Scene) SetNavigator(nav Navigator) { s.nav = nav }

// SetMeasurer swaps the text measurer. Cards already on screen keep their
// layout until the next selection.
func (s *Scene) SetMeasurer(m TextMeasurer) {
	if m != nil {
		s.measure = m
	}
}

// Poll applies finished network results. Call it once per frame from the
// thread that reads the scene.
func (s *Scene) Poll() int { return s.disp.poll() }

func (s *Scene) Close() {
	if s.ownDisp {
		s.disp.close()
	}
}

// FetchRegions requests the chunk around (x, y). Only the most recent
// request is applied; a response that arrives after a newer request was
// issued is dropped.
func (s *Scene) FetchRegions(x, y, rng int, center bool) {
	if center {
		s.view.CenterOn(x, y)
	}
	s.chunkGen++
	gen := s.chunkGen
	s.loading = true
	s.status = fmt.Sprintf("Loading regions around (%d,%d)...", x, y)
	client := s.client
	s.disp.submit(func(ctx context.Context) func() {
		regions, err := client.ListChunk(ctx, x, y, rng)
		return func() { s.applyChunk(gen, GridPoint{X: x, Y: y}, rng, regions, err) }
	})
}

// Refresh refetches the current chunk without moving the camera.
func (s *Scene) Refresh() {
	if !s.hasGrid {
		return
	}
	s.FetchRegions(s.tiles.Center.X, s.tiles.Center.Y, s.tiles.Range, false)
}

func (s *Scene) applyChunk(gen uint64, center GridPoint, rng int, regions []region.Region, err error) {
	if gen != s.chunkGen {
		s.log.Debugf("dropping stale chunk around (%d,%d)", center.X, center.Y)
		return
	}
	s.loading = false
	if err != nil {
		s.err = err
		s.status = fmt.Sprintf("Failed to load regions around (%d,%d): %v", center.X, center.Y, err)
		s.log.Warnf("list chunk (%d,%d) range %d: %v", center.X, center.Y, rng, err)
		return
	}
	s.err = nil
	s.tiles = newTileSet(regions, center, rng, s.view.TileSize)
	s.hasGrid = true
	s.hovered = -1
	origin := s.view.TileOrigin(center.X, center.Y)
	s.DrawMarkerBox(origin.X, origin.Y)
	s.status = fmt.Sprintf("%d regions around (%d,%d)", len(regions), center.X, center.Y)
	s.log.Debugf("chunk (%d,%d) range %d: %d regions", center.X, center.Y, rng, len(regions))
}

// DrawMarkerBox places the single selection marker at a world position,
// replacing any previous one.
func (s *Scene) DrawMarkerBox(px, py float32) {
	s.marker = &Marker{Pos: Point{X: px, Y: py}, Size: float32(s.view.TileSize)}
}

// DrawInfoBox replaces the info card with a loading card for r and fetches
// the region detail. rng is the range the expand button will use.
func (s *Scene) DrawInfoBox(r region.Region, rng int) {
	s.overlayGen++
	gen := s.overlayGen
	s.overlay = newLoadingOverlay(r, rng, s.view.TileOrigin(r.X, r.Y), s.measure)
	client := s.client
	id := r.ID
	s.disp.submit(func(ctx context.Context) func() {
		detail, err := client.GetByID(ctx, id)
		return func() { s.applyDetail(gen, detail, err) }
	})
}

func (s *Scene) applyDetail(gen uint64, detail region.Region, err error) {
	if gen != s.overlayGen || s.overlay == nil {
		s.log.Debugf("dropping stale region detail %s", detail.ID)
		return
	}
	if err != nil {
		s.log.Warnf("get region %s: %v", s.overlay.Region.ID, err)
		s.overlay.fail(err, s.measure)
		return
	}
	s.overlay.fill(detail, s.measure)
}

// ClearSelection removes the info card and invalidates its pending fetch.
func (s *Scene) ClearSelection() {
	s.overlayGen++
	s.overlay = nil
}

func (s *Scene) selectTile(t Tile) {
	s.DrawInfoBox(t.Region, s.tiles.Range)
	s.DrawMarkerBox(t.Pos.X, t.Pos.Y)
}

func (s *Scene) PointerDown(p Point) {
	s.pointerDown = true
	s.pressAt = p
	s.lastPointer = p
}

func (s *Scene) PointerMove(p Point) {
	if s.pointerDown {
		s.view.Pan(s.lastPointer, p)
	}
	s.lastPointer = p
	s.updateHover(p)
}

// PointerUp fires a click only when the pointer comes up exactly where it
// went down; anything else was a drag.
func (s *Scene) PointerUp(p Point) {
	wasDown := s.pointerDown
	s.pointerDown = false
	s.lastPointer = p
	if !wasDown || p != s.pressAt {
		return
	}
	s.click(p)
}

// PointerLeave ends a drag and clears hover when the pointer leaves the map.
func (s *Scene) PointerLeave() {
	s.pointerDown = false
	s.hovered = -1
}

type hitTarget int

const (
	hitNothing hitTarget = iota
	hitTile
	hitInfoText
	hitInfoButton
)

// hit finds the topmost interactive object under a screen point. The info
// background is not interactive, so tiles under it still take clicks.
func (s *Scene) hit(p Point) (hitTarget, int) {
	world := s.view.ScreenToWorld(p)
	if o := s.overlay; o != nil {
		if o.Button != nil && o.Button.Bounds.Contains(world) {
			return hitInfoButton, -1
		}
		if o.State == OverlayReady && o.Text.Bounds.Contains(world) {
			return hitInfoText, -1
		}
	}
	if i := s.tiles.hit(world); i >= 0 {
		return hitTile, i
	}
	return hitNothing, -1
}

func (s *Scene) click(p Point) {
	target, i := s.hit(p)
	switch target {
	case hitInfoButton:
		o := s.overlay
		s.FetchRegions(o.Region.X, o.Region.Y, o.Range, true)
	case hitInfoText:
		if s.nav != nil {
			s.nav.OpenRegion(s.overlay.Region.ID)
		}
	case hitTile:
		s.selectTile(s.tiles.Tiles[i])
	}
}

func (s *Scene) updateHover(p Point) {
	target, i := s.hit(p)
	if target == hitTile {
		s.hovered = i
		return
	}
	s.hovered = -1
}

// Objects is the display list sorted by depth. Within a depth, objects keep
// insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, 0, len(s.tiles.Tiles)+4)
	for i, t := range s.tiles.Tiles {
		out = append(out, Object{
			Kind:    KindTile,
			Depth:   DepthTile,
			Bounds:  t.Bounds(),
			Frame:   t.Frame,
			Hovered: i == s.hovered,
			Region:  t.Region,
		})
	}
	if s.marker != nil {
		out = append(out, Object{Kind: KindMarker, Depth: DepthMarker, Bounds: s.marker.Bounds()})
	}
	if o := s.overlay; o != nil {
		if o.Background != nil {
			out = append(out, Object{Kind: KindInfoBackground, Depth: DepthInfoBackground, Bounds: *o.Background, Region: o.Region})
		}
		out = append(out, Object{Kind: KindInfoText, Depth: DepthInfoText, Bounds: o.Text.Bounds, Lines: o.Text.Lines, Region: o.Region})
		if o.Button != nil {
			out = append(out, Object{Kind: KindInfoButton, Depth: DepthInfoButton, Bounds: o.Button.Bounds, Lines: o.Button.Lines, Region: o.Region})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

func (s *Scene) View() Viewport { return s.view }

func (s *Scene) Resize(width, height float32) { s.view.Resize(width, height) }

func (s *Scene) Tiles() TileSet { return s.tiles }

func (s *Scene) Marker() (Marker, bool) {
	if s.marker == nil {
		return Marker{}, false
	}
	return *s.marker, true
}

func (s *Scene) Overlay() (InfoOverlay, bool) {
	if s.overlay == nil {
		return InfoOverlay{}, false
	}
	return *s.overlay, true
}

// Hovered returns the tile under the pointer, if any.
func (s *Scene) Hovered() (Tile, bool) {
	if s.hovered < 0 || s.hovered >= len(s.tiles.Tiles) {
		return Tile{}, false
	}
	return s.tiles.Tiles[s.hovered], true
}

func (s *Scene) Loading() bool { return s.loading }

func (s *Scene) Status() (string, error) { return s.status, s.err }
