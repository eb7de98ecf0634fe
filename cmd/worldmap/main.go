//go:build cgo

package main

import (
	"os"

	"github.com/appengine-ltd/worldmap/internal/gui"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	exitOnError(err)
	if opts.showVersion {
		printVersion()
		return
	}

	e, err := bootstrap(opts)
	exitOnError(err)
	defer e.close()

	if opts.snapshotOut != "" {
		exitOnError(runSnapshot(e, opts.snapshotOut, opts.showInfo))
		return
	}

	app := gui.NewApp(gui.AppConfig{
		Client:        e.client,
		Logger:        e.log,
		StartRegionID: e.startID,
		Range:         e.rng,
		PageLimit:     e.cfg.Map.PageLimit,
		Width:         int32(e.cfg.Window.Width),
		Height:        int32(e.cfg.Window.Height),
		FPS:           int32(e.cfg.Window.FPS),
		TileSheet:     e.cfg.Map.TileSheet,
		PrefsPath:     e.prefsPath,
		Title:         "World Map " + version,
	})
	exitOnError(app.Run())
}
