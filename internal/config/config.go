// Package config loads sites, targets and runtime settings.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/plan"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings for a run.
type Config struct {
	LogLevel        string        `yaml:"log_level"`
	Ephemeris       string        `yaml:"ephemeris"`
	MinimumAltitude float64       `yaml:"minimum_altitude"`
	Refresh         time.Duration `yaml:"refresh"`
	Workers         int           `yaml:"workers"`

	Sites   []Site   `yaml:"sites"`
	Targets []Target `yaml:"targets,omitempty"`
}

// Site is an observing location.
type Site struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`  // degrees, north positive
	Longitude float64 `yaml:"longitude"` // degrees, east positive
	Elevation float64 `yaml:"elevation"` // meters
}

// Observer converts the site to an astro.ObserverInfo.
func (s Site) Observer() astro.ObserverInfo {
	return astro.ObserverInfo{
		LatDeg:     s.Latitude,
		LonDeg:     s.Longitude,
		ElevationM: s.Elevation,
		Name:       s.Name,
	}
}

// Target is a named equatorial position. RA is in hours.
type Target struct {
	Name  string  `yaml:"name"`
	RA    float64 `yaml:"ra"`
	Dec   float64 `yaml:"dec"`
	Epoch string  `yaml:"epoch,omitempty"`
}

// Coordinates parses the target's epoch and returns its coordinates.
func (t Target) Coordinates() (astro.Coordinates, error) {
	epoch, err := astro.ParseEpoch(t.Epoch)
	if err != nil {
		return astro.Coordinates{}, err
	}
	return astro.Coordinates{RAHours: t.RA, DecDeg: t.Dec, Epoch: epoch}, nil
}

// Default returns the built-in configuration: the three Deep Space Network
// complexes and the bright-star catalogue.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		Ephemeris:       "apparent",
		MinimumAltitude: 10,
		Refresh:         30 * time.Second,
		Sites: []Site{
			{Name: "Goldstone", Latitude: 35.4267, Longitude: -116.8900, Elevation: 1000},
			{Name: "Canberra", Latitude: -35.4014, Longitude: 148.9817, Elevation: 680},
			{Name: "Madrid", Latitude: 40.4314, Longitude: -4.2481, Elevation: 830},
		},
	}
}

// Load reads configuration from a file and applies environment variable
// overrides. An empty path uses the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LocalSiteName names the site built from SKYPLAN_LAT and SKYPLAN_LON.
const LocalSiteName = "Local"

func applyEnvOverrides(cfg *Config) error {
	lat, hasLat, err := envFloat("SKYPLAN_LAT")
	if err != nil {
		return err
	}
	lon, hasLon, err := envFloat("SKYPLAN_LON")
	if err != nil {
		return err
	}
	elev, _, err := envFloat("SKYPLAN_ELEVATION")
	if err != nil {
		return err
	}

	switch {
	case hasLat && hasLon:
		local := Site{Name: LocalSiteName, Latitude: lat, Longitude: lon, Elevation: elev}
		cfg.Sites = append([]Site{local}, cfg.Sites...)
	case hasLat || hasLon:
		return fmt.Errorf("%w: SKYPLAN_LAT and SKYPLAN_LON must be set together", ErrInvalid)
	}

	if minAlt, ok, err := envFloat("SKYPLAN_MIN_ALT"); err != nil {
		return err
	} else if ok {
		cfg.MinimumAltitude = minAlt
	}

	if val := os.Getenv("SKYPLAN_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("SKYPLAN_EPHEMERIS"); val != "" {
		cfg.Ephemeris = val
	}

	return nil
}

func envFloat(key string) (float64, bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, val)
	}
	return f, true, nil
}

// Validate checks the configuration. Errors wrap ErrInvalid and name the
// offending field.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}

	switch strings.ToLower(c.Ephemeris) {
	case "", "apparent", "mean":
	default:
		return fmt.Errorf("%w: ephemeris %q (want apparent or mean)", ErrInvalid, c.Ephemeris)
	}

	if math.IsNaN(c.MinimumAltitude) || c.MinimumAltitude <= 0 || c.MinimumAltitude > 90 {
		return fmt.Errorf("%w: minimum_altitude %v must be in (0, 90]", ErrInvalid, c.MinimumAltitude)
	}
	if c.Refresh < time.Second {
		return fmt.Errorf("%w: refresh %v must be at least 1s", ErrInvalid, c.Refresh)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalid, c.Workers)
	}

	if len(c.Sites) == 0 {
		return fmt.Errorf("%w: no sites", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Sites))
	for i, s := range c.Sites {
		if s.Name == "" {
			return fmt.Errorf("%w: sites[%d].name is empty", ErrInvalid, i)
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return fmt.Errorf("%w: sites[%d].name %q is duplicated", ErrInvalid, i, s.Name)
		}
		seen[key] = true
		if !(s.Latitude >= -90 && s.Latitude <= 90) {
			return fmt.Errorf("%w: sites[%d].latitude %v out of range", ErrInvalid, i, s.Latitude)
		}
		if !(s.Longitude >= -180 && s.Longitude <= 180) {
			return fmt.Errorf("%w: sites[%d].longitude %v out of range", ErrInvalid, i, s.Longitude)
		}
	}

	for i, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("%w: targets[%d].name is empty", ErrInvalid, i)
		}
		if !(t.RA >= 0 && t.RA < 24) {
			return fmt.Errorf("%w: targets[%d].ra %v must be in [0, 24) hours", ErrInvalid, i, t.RA)
		}
		if !(t.Dec >= -90 && t.Dec <= 90) {
			return fmt.Errorf("%w: targets[%d].dec %v out of range", ErrInvalid, i, t.Dec)
		}
		if _, err := astro.ParseEpoch(t.Epoch); err != nil {
			return fmt.Errorf("%w: targets[%d].epoch: %v", ErrInvalid, i, err)
		}
	}

	return nil
}

// Site returns the site with the given name, case-insensitively. An empty
// name selects the first site.
func (c *Config) Site(name string) (Site, bool) {
	if name == "" {
		if len(c.Sites) == 0 {
			return Site{}, false
		}
		return c.Sites[0], true
	}
	for _, s := range c.Sites {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}

// PlanTargets returns the configured targets, or the bright-star catalogue
// when none are configured.
func (c *Config) PlanTargets() ([]plan.Target, error) {
	if len(c.Targets) == 0 {
		return plan.TargetsFromCatalog(astro.DefaultStarCatalog().Stars), nil
	}

	targets := make([]plan.Target, 0, len(c.Targets))
	for _, t := range c.Targets {
		coords, err := t.Coordinates()
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Name, err)
		}
		targets = append(targets, plan.Target{Name: t.Name, Coordinates: coords})
	}
	return targets, nil
}

// FindTarget looks a target up by name among the configured targets, then
// the star catalogue.
func (c *Config) FindTarget(name string) (plan.Target, error) {
	for _, t := range c.Targets {
		if strings.EqualFold(t.Name, name) {
			coords, err := t.Coordinates()
			if err != nil {
				return plan.Target{}, fmt.Errorf("target %s: %w", t.Name, err)
			}
			return plan.Target{Name: t.Name, Coordinates: coords}, nil
		}
	}
	if star, ok := astro.DefaultStarCatalog().Find(name); ok {
		return plan.Target{Name: star.Name, Coordinates: star.Coordinates}, nil
	}
	return plan.Target{}, fmt.Errorf("unknown target %q", name)
}
