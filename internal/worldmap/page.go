package worldmap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/appengine-ltd/worldmap/internal/logging"
	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/regionapi"
	"github.com/appengine-ltd/worldmap/internal/regionsearch"
)

const (
	DefaultRange     = 15
	MinRange         = 5
	MaxRange         = 30
	DefaultPageLimit = 10
)

var ErrRangeOutOfBounds = fmt.Errorf("range must be between %d and %d", MinRange, MaxRange)

// Client is the full region API surface used by the map page.
type Client interface {
	ChunkSource
	ListPage(ctx context.Context, pageNum, pageLimit int) ([]region.Region, error)
	ListByFilter(ctx context.Context, f regionapi.Filter) ([]region.Region, error)
	Create(ctx context.Context) (region.Region, error)
	Update(ctx context.Context, r region.Region, id string) (region.Region, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type PageConfig struct {
	Range     int
	PageLimit int
	Width     float32
	Height    float32
	Runner    Runner
	Logger    *logging.Logger
	Measurer  TextMeasurer
	Navigator Navigator
}

// Page hosts the map scene next to the paged region list and the range
// control. All methods must be called from the UI thread.
type Page struct {
	client Client
	disp   *dispatcher
	log    *logging.Logger
	scene  *Scene
	list   *RegionList

	rng      int
	selected *region.Region

	searchQuery string
	searchGen   uint64
	search      []region.Region

	status string
	err    error
}

func ValidRange(n int) bool { return n >= MinRange && n <= MaxRange }

func NewPage(client Client, cfg PageConfig) (*Page, error) {
	if client == nil {
		return nil, errors.New("worldmap: nil client")
	}
	if cfg.Range == 0 {
		cfg.Range = DefaultRange
	}
	if !ValidRange(cfg.Range) {
		return nil, fmt.Errorf("initial range %d: %w", cfg.Range, ErrRangeOutOfBounds)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	disp := newDispatcher(cfg.Runner)
	scene := newScene(client, disp, SceneOptions{
		Logger:    log,
		Measurer:  cfg.Measurer,
		Navigator: cfg.Navigator,
		Width:     cfg.Width,
		Height:    cfg.Height,
	})
	return &Page{
		client: client,
		disp:   disp,
		log:    log,
		scene:  scene,
		list:   NewRegionList(cfg.PageLimit),
		rng:    cfg.Range,
	}, nil
}

func (p *Page) Scene() *Scene { return p.scene }

func (p *Page) List() *RegionList { return p.list }

// Poll applies every finished request, for the scene and the page alike.
func (p *Page) Poll() int { return p.disp.poll() }

func (p *Page) Close() { p.disp.close() }

// Start loads the first list page and, when startID is set, centres the map
// on that region.
func (p *Page) Start(startID string) {
	p.LoadNextPage()
	startID = strings.TrimSpace(startID)
	if startID == "" {
		return
	}
	rng := p.rng
	client := p.client
	p.setStatus(fmt.Sprintf("Loading region %s...", startID), nil)
	p.disp.submit(func(ctx context.Context) func() {
		r, err := client.GetByID(ctx, startID)
		return func() {
			if err != nil {
				p.log.Warnf("start region %s: %v", startID, err)
				p.setStatus(fmt.Sprintf("Failed to load region %s: %v", startID, err), err)
				return
			}
			selected := r
			p.selected = &selected
			p.setStatus("", nil)
			p.scene.FetchRegions(r.X, r.Y, rng, true)
		}
	})
}

func (p *Page) LoadNextPage() {
	page := p.list.Request()
	limit := p.list.Limit()
	client := p.client
	p.disp.submit(func(ctx context.Context) func() {
		regions, err := client.ListPage(ctx, page, limit)
		return func() {
			if err != nil {
				p.log.Warnf("list page %d: %v", page, err)
				p.list.Fail(page)
				p.setStatus(fmt.Sprintf("Failed to load page %d: %v", page, err), err)
				return
			}
			p.list.Deliver(page, regions)
		}
	})
}

func (p *Page) Regions() []region.Region { return p.list.Regions() }

// GoToRegion selects a list entry and recentres the map on it.
func (p *Page) GoToRegion(r region.Region) {
	selected := r
	p.selected = &selected
	p.setStatus("", nil)
	p.scene.FetchRegions(r.X, r.Y, p.rng, true)
}

// ApplyRange refetches around the selected region with the current range,
// leaving the camera where the user panned it.
// With nothing selected it does nothing.
func (p *Page) ApplyRange() {
	if p.selected == nil {
		return
	}
	p.setStatus("", nil)
	p.scene.FetchRegions(p.selected.X, p.selected.Y, p.rng, false)
}

// SetRange changes the range used by the next fetch. Values outside
// [MinRange, MaxRange] are rejected and leave the range unchanged.
func (p *Page) SetRange(n int) error {
	if !ValidRange(n) {
		return fmt.Errorf("range %d: %w", n, ErrRangeOutOfBounds)
	}
	p.rng = n
	return nil
}

func (p *Page) Range() int { return p.rng }

func (p *Page) Selected() (region.Region, bool) {
	if p.selected == nil {
		return region.Region{}, false
	}
	return *p.selected, true
}

// Search asks the server for regions matching name and type, then ranks the
// results by name similarity. An empty query clears the results.
func (p *Page) Search(name string, t region.Type) {
	name = strings.TrimSpace(name)
	p.searchGen++
	gen := p.searchGen
	p.searchQuery = name
	if name == "" && t == "" {
		p.search = nil
		return
	}
	client := p.client
	limit := p.list.Limit()
	p.disp.submit(func(ctx context.Context) func() {
		found, err := client.ListByFilter(ctx, regionapi.Filter{PageNum: 1, PageLimit: limit, Name: name, Type: t})
		return func() {
			if gen != p.searchGen {
				return
			}
			if err != nil {
				p.log.Warnf("search %q: %v", name, err)
				p.setStatus(fmt.Sprintf("Search failed: %v", err), err)
				return
			}
			p.search = rankSearch(found, name)
			p.setStatus(fmt.Sprintf("%d regions match", len(p.search)), nil)
		}
	})
}

func rankSearch(found []region.Region, name string) []region.Region {
	if name == "" {
		return found
	}
	matches := regionsearch.Rank(found, name, 0)
	if len(matches) == 0 {
		return found
	}
	out := make([]region.Region, 0, len(found))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		out = append(out, m.Region)
		seen[m.Region.ID] = true
	}
	for _, r := range found {
		if !seen[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func (p *Page) SearchResults() []region.Region {
	out := make([]region.Region, len(p.search))
	copy(out, p.search)
	return out
}

func (p *Page) SearchQuery() string { return p.searchQuery }

// CreateRegion asks the server for a new default region. done runs on the
// UI thread with the created region.
func (p *Page) CreateRegion(done func(region.Region)) {
	client := p.client
	p.disp.submit(func(ctx context.Context) func() {
		r, err := client.Create(ctx)
		return func() {
			if err != nil {
				p.log.Warnf("create region: %v", err)
				p.setStatus(fmt.Sprintf("Create failed: %v", err), err)
				return
			}
			p.setStatus(fmt.Sprintf("Created region %s", r.ID), nil)
			p.scene.Refresh()
			if done != nil {
				done(r)
			}
		}
	})
}

func (p *Page) SaveRegion(r region.Region, done func(region.Region)) {
	if r.ID == "" {
		p.setStatus("Save failed: region has no id", regionapi.ErrEmptyID)
		return
	}
	client := p.client
	p.disp.submit(func(ctx context.Context) func() {
		saved, err := client.Update(ctx, r, r.ID)
		return func() {
			if err != nil {
				p.log.Warnf("update region %s: %v", r.ID, err)
				p.setStatus(fmt.Sprintf("Save failed: %v", err), err)
				return
			}
			if saved.ID == "" {
				saved = r
			}
			p.list.Replace(saved)
			if p.selected != nil && p.selected.ID == saved.ID {
				p.selected = &saved
			}
			p.setStatus(fmt.Sprintf("Saved %s", saved.Label()), nil)
			p.scene.Refresh()
			if done != nil {
				done(saved)
			}
		}
	})
}

func (p *Page) DeleteRegion(id string, done func()) {
	client := p.client
	p.disp.submit(func(ctx context.Context) func() {
		err := client.DeleteByID(ctx, id)
		return func() {
			if err != nil {
				p.log.Warnf("delete region %s: %v", id, err)
				p.setStatus(fmt.Sprintf("Delete failed: %v", err), err)
				return
			}
			p.list.Remove(id)
			if p.selected != nil && p.selected.ID == id {
				p.selected = nil
			}
			if o, ok := p.scene.Overlay(); ok && o.Region.ID == id {
				p.scene.ClearSelection()
			}
			p.setStatus(fmt.Sprintf("Deleted region %s", id), nil)
			p.scene.Refresh()
			if done != nil {
				done()
			}
		}
	})
}

func (p *Page) DeleteAllRegions() {
	client := p.client
	p.disp.submit(func(ctx context.Context) func() {
		err := client.DeleteAll(ctx)
		return func() {
			if err != nil {
				p.log.Warnf("delete all regions: %v", err)
				p.setStatus(fmt.Sprintf("Delete all failed: %v", err), err)
				return
			}
			p.list.Clear()
			p.selected = nil
			p.search = nil
			p.scene.ClearSelection()
			p.setStatus("Deleted all regions", nil)
			p.scene.Refresh()
		}
	})
}

// FetchRegion loads one region for the detail view. done runs on the UI
// thread.
func (p *Page) FetchRegion(id string, done func(region.Region, error)) {
	client := p.client
	p.disp.submit(func(ctx context.Context) func() {
		r, err := client.GetByID(ctx, id)
		return func() {
			if err != nil {
				p.log.Warnf("get region %s: %v", id, err)
			}
			if done != nil {
				done(r, err)
			}
		}
	})
}

func (p *Page) setStatus(msg string, err error) {
	p.status = msg
	p.err = err
}

// Status prefers the page's own message and falls back to the scene's.
func (p *Page) Status() (string, error) {
	if p.status != "" {
		return p.status, p.err
	}
	return p.scene.Status()
}
