package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/appengine-ltd/worldmap/internal/auth"
	"github.com/appengine-ltd/worldmap/internal/config"
	"github.com/appengine-ltd/worldmap/internal/logging"
	"github.com/appengine-ltd/worldmap/internal/regionapi"
	"github.com/appengine-ltd/worldmap/internal/snapshot"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	configPath  string
	regionID    string
	snapshotOut string
	showInfo    bool
	logLevel    string
	showVersion bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("worldmap", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to worldmap.yaml")
	fs.StringVar(&opts.regionID, "id", "", "region id to open the map on")
	fs.StringVar(&opts.snapshotOut, "snapshot", "", "render the map to this PNG and exit")
	fs.BoolVar(&opts.showInfo, "info", false, "with -snapshot, open the info card of the start region")
	fs.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// env is everything both the window and the snapshot path need.
type env struct {
	cfg       config.Config
	log       *logging.Logger
	client    *regionapi.Client
	prefsPath string
	startID   string
	rng       int
}

func bootstrap(opts options) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, level)
	if err := log.WithFile(cfg.Log.File); err != nil {
		return nil, err
	}

	tokens := auth.FromConfig(cfg.API.Token, cfg.API.TokenFile)
	if tok, err := tokens.Token(); err != nil {
		log.Warnf("api token: %v", err)
	} else if exp, ok := auth.ExpiresAt(tok); ok && auth.Expired(tok, time.Now()) {
		log.Warnf("api token expired at %s", exp.Format(time.RFC3339))
	}

	client, err := regionapi.New(cfg.API.URL(), tokens,
		regionapi.WithTimeout(cfg.API.Timeout),
		regionapi.WithLogger(log),
	)
	if err != nil {
		log.Close()
		return nil, err
	}

	e := &env{cfg: cfg, log: log, client: client, rng: cfg.Map.Range}
	e.prefsPath, err = config.PrefsPath()
	if err != nil {
		log.Warnf("prefs disabled: %v", err)
	}
	var prefs config.Prefs
	if e.prefsPath != "" {
		if prefs, err = config.LoadPrefs(e.prefsPath); err != nil {
			log.Warnf("load prefs: %v", err)
		}
	}
	e.startID = config.StartRegion(opts.regionID, cfg, prefs)
	// A remembered range only applies while the config leaves the default.
	if cfg.Map.Range == worldmap.DefaultRange && worldmap.ValidRange(prefs.Range) {
		e.rng = prefs.Range
	}
	log.Infof("worldmap %s api=%s start=%q range=%d", version, client.BaseURL(), e.startID, e.rng)
	return e, nil
}

func (e *env) close() {
	e.log.Close()
}

func printVersion() {
	fmt.Printf("worldmap %s (%s) %s\n", version, commit, date)
}

var errNoStartRegion = errors.New("snapshot needs a start region: pass -id or set map.start_region_id")

// runSnapshot loads the start region synchronously and writes one frame.
func runSnapshot(e *env, out string, showInfo bool) error {
	if e.startID == "" {
		return errNoStartRegion
	}
	var sheet snapshot.Options
	if img, err := snapshot.LoadSheet(e.cfg.Map.TileSheet); err != nil {
		e.log.Infof("tile sheet %q not loaded, using flat colours: %v", e.cfg.Map.TileSheet, err)
	} else {
		sheet.Sheet = img
	}
	renderer := snapshot.New(sheet)

	page, err := worldmap.NewPage(e.client, worldmap.PageConfig{
		Range:     e.rng,
		PageLimit: e.cfg.Map.PageLimit,
		Width:     float32(e.cfg.Window.Width),
		Height:    float32(e.cfg.Window.Height),
		Runner:    func(job func()) { job() },
		Logger:    e.log,
		Measurer:  renderer.Measurer(),
	})
	if err != nil {
		return err
	}
	defer page.Close()

	page.Start(e.startID)
	drain(page)
	selected, ok := page.Selected()
	if !ok {
		msg, _ := page.Status()
		return errors.New(msg)
	}
	if msg, err := page.Scene().Status(); err != nil {
		return errors.New(msg)
	}
	if showInfo {
		page.Scene().DrawInfoBox(selected, page.Range())
		drain(page)
	}

	if err := snapshot.WriteFile(out, renderer.Render(page.Scene())); err != nil {
		return err
	}
	msg, _ := page.Status()
	e.log.Infof("wrote %s: %s", out, msg)
	return nil
}

func drain(page *worldmap.Page) {
	for page.Poll() > 0 {
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
