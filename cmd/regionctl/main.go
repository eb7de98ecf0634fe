package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/appengine-ltd/worldmap/internal/auth"
	"github.com/appengine-ltd/worldmap/internal/config"
	"github.com/appengine-ltd/worldmap/internal/logging"
	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/regionapi"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

const usage = `usage: regionctl [-config path] [-v] <command> [args]

commands:
  create                          create a region with server defaults
  list                            list every region
  page <num> [limit]              list one page (limit defaults to 10)
  chunk <x> <y> [range]           list regions around a cell (range defaults to 15)
  filter [-name n] [-type t] [-page n] [-limit n]
  get <id>
  update <id> [-name n] [-type t] [-x n] [-y n]
  delete <id>
  delete-all -yes
`

var errUsage = errors.New("invalid usage")

func main() {
	var (
		configPath string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "path to worldmap.yaml")
	flag.BoolVar(&verbose, "v", false, "log requests to stderr")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		die(err)
	}
	level := logging.WARN
	if verbose {
		level = logging.DEBUG
	}
	client, err := regionapi.New(cfg.API.URL(), auth.FromConfig(cfg.API.Token, cfg.API.TokenFile),
		regionapi.WithTimeout(cfg.API.Timeout),
		regionapi.WithLogger(logging.New(os.Stderr, level)),
	)
	if err != nil {
		die(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout+5*time.Second)
	defer cancel()
	if err := run(ctx, client, flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		cancel()
		die(err)
	}
}

func run(ctx context.Context, c *regionapi.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "create":
		r, err := c.Create(ctx)
		return emit(out, r, err)
	case "list":
		rs, err := c.ListAll(ctx)
		return emit(out, rs, err)
	case "page":
		nums, err := ints(rest, 1, []int{0, worldmap.DefaultPageLimit})
		if err != nil {
			return err
		}
		rs, err := c.ListPage(ctx, nums[0], nums[1])
		return emit(out, rs, err)
	case "chunk":
		nums, err := ints(rest, 2, []int{0, 0, worldmap.DefaultRange})
		if err != nil {
			return err
		}
		rs, err := c.ListChunk(ctx, nums[0], nums[1], nums[2])
		return emit(out, rs, err)
	case "filter":
		f, err := parseFilter(rest)
		if err != nil {
			return err
		}
		rs, err := c.ListByFilter(ctx, f)
		return emit(out, rs, err)
	case "get":
		id, err := oneID(rest)
		if err != nil {
			return err
		}
		r, err := c.GetByID(ctx, id)
		return emit(out, r, err)
	case "update":
		return update(ctx, c, rest, out)
	case "delete":
		id, err := oneID(rest)
		if err != nil {
			return err
		}
		if err := c.DeleteByID(ctx, id); err != nil {
			return err
		}
		return emit(out, map[string]string{"deleted": id}, nil)
	case "delete-all":
		fs := flag.NewFlagSet("delete-all", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "confirm deleting every region")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		if !*yes {
			return errors.New("delete-all removes every region; pass -yes to confirm")
		}
		if err := c.DeleteAll(ctx); err != nil {
			return err
		}
		return emit(out, map[string]string{"deleted": "all"}, nil)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// update reads the current region, applies only the flags that were set
// and writes the whole region back.
func update(ctx context.Context, c *regionapi.Client, args []string, out io.Writer) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("%w: update needs an id", errUsage)
	}
	id := args[0]
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	name := fs.String("name", "", "new name")
	typ := fs.String("type", "", "new type")
	x := fs.Int("x", 0, "new x")
	y := fs.Int("y", 0, "new y")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	r, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			r.Name = *name
		case "type":
			r.Type = region.ParseType(*typ)
		case "x":
			r.X = *x
		case "y":
			r.Y = *y
		}
	})
	updated, err := c.Update(ctx, r, id)
	return emit(out, updated, err)
}

func parseFilter(args []string) (regionapi.Filter, error) {
	f := regionapi.Filter{}
	var typ string
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	fs.StringVar(&f.Name, "name", "", "name to match")
	fs.StringVar(&typ, "type", "", "terrain type")
	fs.IntVar(&f.PageNum, "page", 1, "page number")
	fs.IntVar(&f.PageLimit, "limit", worldmap.DefaultPageLimit, "page size")
	if err := fs.Parse(args); err != nil {
		return f, fmt.Errorf("%w: %v", errUsage, err)
	}
	if typ != "" {
		f.Type = region.ParseType(typ)
	}
	return f, nil
}

// ints parses positional integers. The first required values must be
// present; the rest fall back to defaults.
func ints(args []string, required int, defaults []int) ([]int, error) {
	if len(args) < required || len(args) > len(defaults) {
		return nil, fmt.Errorf("%w: expected %d to %d numbers, got %d", errUsage, required, len(defaults), len(args))
	}
	out := append([]int(nil), defaults...)
	for i, raw := range args {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errUsage, raw)
		}
		out[i] = n
	}
	return out, nil
}

func oneID(args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: expected one region id", errUsage)
	}
	return args[0], nil
}

func emit(out io.Writer, v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
