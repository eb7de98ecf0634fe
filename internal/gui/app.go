package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldmap/internal/config"
	"github.com/appengine-ltd/worldmap/internal/logging"
	uitheme "github.com/appengine-ltd/worldmap/internal/ui/theme"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

type AppConfig struct {
	Client        worldmap.Client
	Logger        *logging.Logger
	StartRegionID string
	Range         int
	PageLimit     int
	Width         int32
	Height        int32
	FPS           int32
	TileSheet     string
	// PrefsPath, when set, receives the last region and range on exit.
	PrefsPath string
	Title     string
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

type screen int

const (
	screenMap screen = iota
	screenDetail
)

type sidebarState struct {
	SearchFocused bool
	Query         string
	Submitted     bool
	Scroll        int
	Notice        string

	ConfirmDeleteAll bool
}

type mapUI struct {
	cfg AppConfig
	log *logging.Logger

	width  int32
	height int32
	quit   bool
	screen screen

	page   *worldmap.Page
	side   sidebarState
	detail detailState

	dragging  bool
	overMap   bool
	lastLocal worldmap.Point
}

func (a *App) Run() error {
	ui, err := newMapUI(a.cfg)
	if err != nil {
		return err
	}
	return ui.Run()
}

func newMapUI(cfg AppConfig) (*mapUI, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("gui: no region client")
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 760
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "worldmap"
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &mapUI{
		cfg:    cfg,
		log:    log,
		width:  cfg.Width,
		height: cfg.Height,
		screen: screenMap,
	}, nil
}

func (ui *mapUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, ui.cfg.Title)
	rl.SetExitKey(0)
	rl.SetTargetFPS(ui.cfg.FPS)
	initTypography()
	if !uitheme.InitTiles(ui.cfg.TileSheet) {
		ui.log.Infof("tile sheet %q not loaded, using flat colours", ui.cfg.TileSheet)
	}

	layout := mapScreenLayout(ui.width, ui.height)
	page, err := worldmap.NewPage(ui.cfg.Client, worldmap.PageConfig{
		Range:     ui.cfg.Range,
		PageLimit: ui.cfg.PageLimit,
		Width:     layout.Map.Width,
		Height:    layout.Map.Height,
		Logger:    ui.log,
		Measurer:  sceneMeasurer{size: typeScale.Map},
		Navigator: ui,
	})
	if err != nil {
		ui.shutdown()
		return err
	}
	ui.page = page
	ui.page.Start(ui.cfg.StartRegionID)

	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())

		ui.update()

		rl.BeginDrawing()
		rl.ClearBackground(AppTheme.Background)
		ui.draw()
		rl.EndDrawing()
	}

	ui.savePrefs()
	ui.page.Close()
	ui.shutdown()
	return nil
}

func (ui *mapUI) shutdown() {
	uitheme.UnloadTiles()
	shutdownTypography()
	rl.CloseWindow()
}

func (ui *mapUI) update() {
	ui.page.Poll()

	switch ui.screen {
	case screenMap:
		ui.updateMap()
	case screenDetail:
		ui.updateDetail()
	}
}

func (ui *mapUI) draw() {
	switch ui.screen {
	case screenMap:
		ui.drawMap()
	case screenDetail:
		ui.drawMap()
		rl.DrawRectangle(0, 0, ui.width, ui.height, rl.Fade(AppTheme.Background, 0.75))
		ui.drawDetail()
	}
}

// OpenRegion switches to the detail screen; the info card's text calls it.
func (ui *mapUI) OpenRegion(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	ui.openDetail(id)
}

func (ui *mapUI) savePrefs() {
	if ui.cfg.PrefsPath == "" || ui.page == nil {
		return
	}
	prefs, err := config.LoadPrefs(ui.cfg.PrefsPath)
	if err != nil {
		ui.log.Warnf("load prefs: %v", err)
	}
	if r, ok := ui.page.Selected(); ok {
		prefs.LastRegionID = r.ID
	}
	prefs.Range = ui.page.Range()
	if err := config.SavePrefs(ui.cfg.PrefsPath, prefs); err != nil {
		ui.log.Warnf("save prefs: %v", err)
	}
}

func (ui *mapUI) statusLine() (string, bool) {
	if ui.side.Notice != "" {
		return ui.side.Notice, true
	}
	msg, err := ui.page.Status()
	return msg, err != nil
}
