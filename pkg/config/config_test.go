package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/opsconsole/pkg/trail"
)

const testConfig = `
listen: ":9000"
timezone: Europe/London
api_base_url: https://ops.example.com/api
history_base_url: https://history.example.com
use_trip_history: true
trip_history_enabled_from_date: "2023-01-15"
display_limit: 250
routes:
  - route_id: R1
    route_short_name: "1"
  - route_id: R2
    route_short_name: 2A
`

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "https://ops.example.com/api", cfg.APIBaseURL)
	assert.True(t, cfg.UseTripHistory)
	assert.Equal(t, 250, cfg.DisplayLimit)
	assert.Equal(t, float64(trail.DefaultMinPixelDistance), cfg.MinPixelDistance)

	cutover, err := cfg.TripHistoryCutover()
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15", cutover.Format("2006-01-02"))

	routes := cfg.RouteIndex()
	assert.Equal(t, "2A", routes["R2"].RouteShortName)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPSCONSOLE_API_BASE_URL", "http://localhost:4000")
	t.Setenv("OPSCONSOLE_USE_TRIP_HISTORY", "false")
	t.Setenv("OPSCONSOLE_DISPLAY_LIMIT", "100")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.APIBaseURL)
	assert.False(t, cfg.UseTripHistory)
	assert.Equal(t, 100, cfg.DisplayLimit)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultDisplayLimit, cfg.DisplayLimit)
	assert.Equal(t, float64(trail.DefaultMinPixelDistance), cfg.MinPixelDistance)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)

	cutover, err := cfg.TripHistoryCutover()
	require.NoError(t, err)
	assert.True(t, cutover.IsZero())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		env      map[string]string
	}{
		{"unknown timezone", "timezone: Mars/Olympus", nil},
		{"invalid cutover date", `trip_history_enabled_from_date: "15/01/2023"`, nil},
		{"invalid yaml", "routes: [", nil},
		{"invalid boolean override", "", map[string]string{"OPSCONSOLE_USE_ARCHIVE": "maybe"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load(writeConfig(t, tc.contents))
			assert.Error(t, err)
		})
	}
}
