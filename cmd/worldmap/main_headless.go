//go:build !cgo

package main

import (
	"fmt"
	"os"
)

// Without cgo there is no raylib window; the map can still be rendered to
// a PNG.
func main() {
	opts, err := parseFlags(os.Args[1:])
	exitOnError(err)
	if opts.showVersion {
		printVersion()
		return
	}
	if opts.snapshotOut == "" {
		fmt.Fprintln(os.Stderr, "worldmap was built without cgo; only -snapshot is available.")
		os.Exit(2)
	}

	e, err := bootstrap(opts)
	exitOnError(err)
	defer e.close()
	exitOnError(runSnapshot(e, opts.snapshotOut, opts.showInfo))
}
