package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dock-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, domain.DomainBounds{Opening: 6, Closing: 12, UnloadBuffer: 1}, cfg.Dock.Bounds())
	assert.Equal(t, 4, cfg.Dock.Location)
	assert.Equal(t, 5, cfg.Dock.MaxVehicles)
	assert.Len(t, cfg.Companies, 4)
	assert.Equal(t, 8, cfg.Network.Size())
	assert.Len(t, cfg.Network.Locations, 8)
	assert.Equal(t, "lifo", cfg.Pool.Order)
	assert.Equal(t, SourceStatic, cfg.Matrix.Source)
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 20}, cfg.Network.Windows[0])
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 12}, cfg.Network.Windows[4])
}

func TestSampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load("../../configs/dock.yaml")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Network.Matrix, cfg.Network.Matrix)
	assert.Equal(t, def.Network.Windows, cfg.Network.Windows)
	assert.Equal(t, def.Dock, cfg.Dock)
	assert.Equal(t, def.Solver, cfg.Solver)
	assert.Equal(t, def.Companies, cfg.Companies)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("DOCK_SERVER__PORT", "9191")
	t.Setenv("DOCK_DOCK__UNLOAD_BUFFER", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Dock.UnloadBuffer)
	assert.Equal(t, Default().Network.Matrix, cfg.Network.Matrix)
	assert.Equal(t, 24*time.Hour, cfg.Matrix.CacheTTL)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "dock.yaml", `dock:
  location: 1
  opening: 0
  closing: 20
  unload_buffer: 2
  max_vehicles: 3
pool:
  order: earliest
network:
  matrix:
    - [0, 3, 4]
    - [3, 0, 2]
    - [4, 2, 0]
  windows:
    - {begin: 0, end: 30}
    - {begin: 0, end: 20}
    - {begin: 5, end: 25}
  locations:
    - name: depot
    - name: dock
    - name: shop
solver:
  max_wait: 10
companies:
  - id: acme
    depot: 0
  - id: globex
    depot: 2
matrix:
  cache_ttl: 90m
log:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"dock.location", cfg.Dock.Location, 1},
		{"dock.bounds", cfg.Dock.Bounds(), domain.DomainBounds{Opening: 0, Closing: 20, UnloadBuffer: 2}},
		{"dock.max_vehicles", cfg.Dock.MaxVehicles, 3},
		{"pool.order", cfg.Pool.Order, "earliest"},
		{"network.size", cfg.Network.Size(), 3},
		{"network.window", cfg.Network.Windows[2], domain.TimeWindow{Begin: 5, End: 25}},
		{"network.matrix", cfg.Network.Matrix[2][1], 2},
		{"network.location", cfg.Network.Locations[2].Name, "shop"},
		{"solver.max_wait", cfg.Solver.MaxWait, 10},
		{"solver.horizon", cfg.Solver.Horizon, 30},
		{"companies", cfg.Companies[1], domain.Company{ID: "globex", Depot: 2}},
		{"matrix.cache_ttl", cfg.Matrix.CacheTTL, 90 * time.Minute},
		{"log.level", cfg.Log.Level, "debug"},
		{"server.port", cfg.Server.Port, "8080"},
		{"redis.channel", cfg.Redis.Channel, "dock:allocations"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "dock.json", `{
  "dock": {"location": 0, "opening": 0, "closing": 10},
  "network": {"matrix": [[0]], "windows": [{"begin": 0, "end": 10}]},
  "companies": [{"id": "solo", "depot": 0}]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Location{{Name: "loc-0"}}, cfg.Network.Locations)
	assert.Equal(t, 1, cfg.Dock.UnloadBuffer)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"bad extension": "",
		"depot out of range": `dock: {location: 0, opening: 0, closing: 10}
network: {matrix: [[0]], windows: [{begin: 0, end: 10}]}
companies: [{id: far, depot: 3}]
`,
		"vehicle cap": `dock: {location: 0, opening: 0, closing: 10, max_vehicles: 6}
network: {matrix: [[0]], windows: [{begin: 0, end: 10}]}
companies: [{id: solo, depot: 0}]
`,
		"matrix mismatch": `dock: {location: 0, opening: 0, closing: 10}
network: {matrix: [[0, 1], [1, 0]], windows: [{begin: 0, end: 10}]}
`,
		"ors without key": `dock: {location: 0, opening: 0, closing: 10}
network: {windows: [{begin: 0, end: 10}], locations: [{name: a, coordinates: {lon: 1, lat: 2}}]}
matrix: {source: ors}
`,
		"unknown pool order": `dock: {location: 0, opening: 0, closing: 10}
pool: {order: fifo}
network: {matrix: [[0]], windows: [{begin: 0, end: 10}]}
`,
		"inverted hours": `dock: {location: 0, opening: 12, closing: 6}
network: {matrix: [[0]], windows: [{begin: 0, end: 10}]}
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			file := "dock.yaml"
			if body == "" {
				file = "dock.toml"
			}
			_, err := Load(writeFile(t, file, body))
			assert.Error(t, err)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("DOCK_TEST_VALUE", " set ")
	assert.Equal(t, "set", Get("DOCK_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", Get("DOCK_TEST_MISSING", "fallback"))
}
