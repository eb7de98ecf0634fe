package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("WORLDMAP_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:3000/api/", cfg.API.URL())
}

func TestLoadPrecedenceDefaultsYAMLEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "worldmap.yaml", `
api:
  host: maps.example.com
  production: true
  protocol: https
  timeout: 5s
map:
  range: 20
  page_limit: 25
log:
  level: debug
`)
	t.Setenv("WORLDMAP_RANGE", "8")
	t.Setenv("WORLDMAP_TOKEN", " secret ")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Map.Range, "env beats yaml")
	assert.Equal(t, 25, cfg.Map.PageLimit, "yaml beats defaults")
	assert.Equal(t, 1280, cfg.Window.Width, "defaults fill the rest")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, "https://maps.example.com/api/", cfg.API.URL())
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	writeFile(t, dir, ".env", "WORLDMAP_START_REGION_ID=abc123\n")
	t.Setenv("WORLDMAP_CONFIG", "")
	// Registered so the value godotenv sets is cleared after the test.
	t.Setenv("WORLDMAP_START_REGION_ID", "")
	require.NoError(t, os.Unsetenv("WORLDMAP_START_REGION_ID"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.Map.StartRegionID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "map:\n  range: 31\napi:\n  protocol: ftp\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.range 31")
	assert.Contains(t, err.Error(), "api.protocol")

	t.Setenv("WORLDMAP_PORT", "eighty")
	_, err = Load(writeFile(t, dir, "ok.yaml", "{}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORLDMAP_PORT")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBaseURLOverride(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "https://api.example.com/api/"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.example.com/api/", cfg.API.URL())

	cfg.API.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())
}

func TestPrefsRoundTripAndMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	p, err := LoadPrefs(path)
	require.NoError(t, err)
	assert.Equal(t, Prefs{}, p)

	require.NoError(t, SavePrefs(path, Prefs{LastRegionID: "r1", Range: 12}))
	p, err = LoadPrefs(path)
	require.NoError(t, err)
	assert.Equal(t, Prefs{LastRegionID: "r1", Range: 12}, p)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestPrefsPathOverride(t *testing.T) {
	t.Setenv("WORLDMAP_PREFS", "/tmp/custom-prefs.json")
	path, err := PrefsPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-prefs.json", path)
}

func TestStartRegionPrecedence(t *testing.T) {
	cfg := Default()
	prefs := Prefs{LastRegionID: "saved"}
	assert.Equal(t, "saved", StartRegion("", cfg, prefs))

	cfg.Map.StartRegionID = "configured"
	assert.Equal(t, "configured", StartRegion(" ", cfg, prefs))
	assert.Equal(t, "flag", StartRegion("flag", cfg, prefs))
	assert.Equal(t, "", StartRegion("", Default(), Prefs{}))
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores the previous one when the test finishes.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
