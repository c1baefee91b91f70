package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/trail"
	"github.com/travigo/opsconsole/pkg/util"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

const (
	defaultListen       = ":8080"
	defaultTimezone     = "Europe/London"
	defaultDisplayLimit = 600
	defaultTrailZoom    = 15
)

type Config struct {
	Listen   string `yaml:"listen"`
	Timezone string `yaml:"timezone"`

	// APIBaseURL serves vehicle history, positions, trip detail and the legacy trip search
	APIBaseURL string `yaml:"api_base_url"`
	// HistoryBaseURL serves the trip history search backend
	HistoryBaseURL string `yaml:"history_base_url"`

	UseTripHistory             bool   `yaml:"use_trip_history"`
	TripHistoryEnabledFromDate string `yaml:"trip_history_enabled_from_date"`

	DisplayLimit     int     `yaml:"display_limit"`
	MinPixelDistance float64 `yaml:"min_pixel_distance"`
	TrailZoom        int     `yaml:"trail_zoom"`

	// UseArchive serves replays from the recorder's mongo archive before asking the upstream API
	UseArchive bool          `yaml:"use_archive"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`

	Routes []ctdf.Route `yaml:"routes"`
}

func Default() *Config {
	return &Config{
		Listen:           defaultListen,
		Timezone:         defaultTimezone,
		DisplayLimit:     defaultDisplayLimit,
		MinPixelDistance: trail.DefaultMinPixelDistance,
		TrailZoom:        defaultTrailZoom,
		CacheTTL:         5 * time.Minute,
	}
}

// Load reads the optional YAML file and applies OPSCONSOLE_* environment overrides on top
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := yaml.Unmarshal(contents, config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := config.applyEnvironment(util.GetPrefixedEnvironmentVariables("OPSCONSOLE_")); err != nil {
		return nil, err
	}

	if _, err := config.Location(); err != nil {
		return nil, err
	}
	if _, err := config.TripHistoryCutover(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	if env["LISTEN"] != "" {
		c.Listen = env["LISTEN"]
	}
	if env["TIMEZONE"] != "" {
		c.Timezone = env["TIMEZONE"]
	}
	if env["API_BASE_URL"] != "" {
		c.APIBaseURL = env["API_BASE_URL"]
	}
	if env["HISTORY_BASE_URL"] != "" {
		c.HistoryBaseURL = env["HISTORY_BASE_URL"]
	}
	if env["TRIP_HISTORY_FROM"] != "" {
		c.TripHistoryEnabledFromDate = env["TRIP_HISTORY_FROM"]
	}

	if value := env["USE_TRIP_HISTORY"]; value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("OPSCONSOLE_USE_TRIP_HISTORY: %w", err)
		}
		c.UseTripHistory = enabled
	}
	if value := env["USE_ARCHIVE"]; value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("OPSCONSOLE_USE_ARCHIVE: %w", err)
		}
		c.UseArchive = enabled
	}
	if value := env["DISPLAY_LIMIT"]; value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("OPSCONSOLE_DISPLAY_LIMIT: %w", err)
		}
		c.DisplayLimit = limit
	}

	return nil
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// TripHistoryCutover is the first service date served by the trip history backend, zero when unset
func (c *Config) TripHistoryCutover() (time.Time, error) {
	if c.TripHistoryEnabledFromDate == "" {
		return time.Time{}, nil
	}

	location, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}

	cutover, err := time.ParseInLocation(ctdf.SearchDateFormat, c.TripHistoryEnabledFromDate, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("trip_history_enabled_from_date: %w", err)
	}

	return cutover, nil
}

// RouteIndex keys the configured routes by route id
func (c *Config) RouteIndex() map[string]ctdf.Route {
	routes := map[string]ctdf.Route{}

	for _, route := range c.Routes {
		routes[route.RouteID] = route
	}

	return routes
}
