package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prefs is what the viewer remembers between runs.
type Prefs struct {
	LastRegionID string `json:"last_region_id,omitempty"`
	Range        int    `json:"range,omitempty"`
}

func PrefsPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(envPrefix + "PREFS")); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.New("user config directory not found")
	}
	return filepath.Join(dir, "worldmap", "prefs.json"), nil
}

// LoadPrefs returns zero Prefs when the file does not exist yet.
func LoadPrefs(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, err
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}
	p.LastRegionID = strings.TrimSpace(p.LastRegionID)
	return p, nil
}

// SavePrefs writes through a temp file and rename so a crash never leaves
// a half-written file behind.
func SavePrefs(path string, p Prefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	cleanup = false
	return nil
}

// StartRegion picks the region to open with: the command line first, then
// the config file, then the last region viewed.
func StartRegion(flagID string, cfg Config, prefs Prefs) string {
	for _, id := range []string{flagID, cfg.Map.StartRegionID, prefs.LastRegionID} {
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	return ""
}
