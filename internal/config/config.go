package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/worldmap/internal/logging"
	"github.com/appengine-ltd/worldmap/internal/regionapi"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

const (
	DefaultConfigFile = "worldmap.yaml"
	envPrefix         = "WORLDMAP_"
)

type Config struct {
	API    APIConfig    `yaml:"api"`
	Map    MapConfig    `yaml:"map"`
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
}

type APIConfig struct {
	// BaseURL overrides the URL built from Protocol, Host and Port.
	BaseURL    string        `yaml:"base_url"`
	Protocol   string        `yaml:"protocol"`
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	Production bool          `yaml:"production"`
	Token      string        `yaml:"token"`
	TokenFile  string        `yaml:"token_file"`
	Timeout    time.Duration `yaml:"timeout"`
}

type MapConfig struct {
	StartRegionID string `yaml:"start_region_id"`
	Range         int    `yaml:"range"`
	PageLimit     int    `yaml:"page_limit"`
	TileSheet     string `yaml:"tile_sheet"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			Protocol: "http",
			Host:     "localhost",
			Port:     3000,
			Timeout:  20 * time.Second,
		},
		Map: MapConfig{
			Range:     15,
			PageLimit: 10,
			TileSheet: "assets/tiles/world_spritesheet.png",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 760,
			FPS:    60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path,
// then WORLDMAP_* environment variables. A .env file next to the working
// directory is loaded first and never overrides variables already set.
// An empty path uses WORLDMAP_CONFIG, then worldmap.yaml if it exists.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	explicit := path != ""
	if path == "" {
		path = strings.TrimSpace(os.Getenv(envPrefix + "CONFIG"))
		explicit = path != ""
	}
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strEnv("BASE_URL", &cfg.API.BaseURL)
	strEnv("PROTOCOL", &cfg.API.Protocol)
	strEnv("HOST", &cfg.API.Host)
	strEnv("TOKEN", &cfg.API.Token)
	strEnv("TOKEN_FILE", &cfg.API.TokenFile)
	strEnv("START_REGION_ID", &cfg.Map.StartRegionID)
	strEnv("TILE_SHEET", &cfg.Map.TileSheet)
	strEnv("LOG_LEVEL", &cfg.Log.Level)
	strEnv("LOG_FILE", &cfg.Log.File)

	for key, dst := range map[string]*int{
		"PORT":          &cfg.API.Port,
		"RANGE":         &cfg.Map.Range,
		"PAGE_LIMIT":    &cfg.Map.PageLimit,
		"WINDOW_WIDTH":  &cfg.Window.Width,
		"WINDOW_HEIGHT": &cfg.Window.Height,
	} {
		if err := intEnv(key, dst); err != nil {
			return err
		}
	}
	if raw, ok := lookup("PRODUCTION"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sPRODUCTION: %w", envPrefix, err)
		}
		cfg.API.Production = v
	}
	if raw, ok := lookup("TIMEOUT"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.API.Timeout = d
	}
	return nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	return v, v != ""
}

func strEnv(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func intEnv(key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

// URL returns the API base URL, preferring an explicit base_url.
func (a APIConfig) URL() string {
	if a.BaseURL != "" {
		return a.BaseURL
	}
	return regionapi.BaseURL(a.Protocol, a.Host, a.Production, a.Port)
}

func (c Config) Validate() error {
	var errs []error
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute http(s) URL", c.API.BaseURL))
		}
	} else {
		if c.API.Protocol != "http" && c.API.Protocol != "https" {
			errs = append(errs, fmt.Errorf("api.protocol %q must be http or https", c.API.Protocol))
		}
		if strings.TrimSpace(c.API.Host) == "" {
			errs = append(errs, errors.New("api.host is required"))
		}
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port %d out of range", c.API.Port))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout %s must be positive", c.API.Timeout))
	}
	if !worldmap.ValidRange(c.Map.Range) {
		errs = append(errs, fmt.Errorf("map.range %d: %w", c.Map.Range, worldmap.ErrRangeOutOfBounds))
	}
	if c.Map.PageLimit <= 0 {
		errs = append(errs, fmt.Errorf("map.page_limit %d must be positive", c.Map.PageLimit))
	}
	if c.Window.Width < 640 || c.Window.Height < 480 {
		errs = append(errs, fmt.Errorf("window %dx%d is smaller than 640x480", c.Window.Width, c.Window.Height))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}
