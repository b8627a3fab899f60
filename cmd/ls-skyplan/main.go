// Command ls-skyplan reports what is up in the night sky from an observing
// site: altitudes, rise and circumpolar status, Moon interference and
// visibility windows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/config"
	"github.com/litescript/ls-skyplan/internal/ephem"
	"github.com/litescript/ls-skyplan/internal/logging"
	"github.com/litescript/ls-skyplan/internal/plan"
)

// app holds what every subcommand needs once flags are resolved.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	planner *plan.Planner
	site    astro.ObserverInfo
	at      time.Time
	minAlt  float64
}

func main() {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ls-skyplan",
		Short: "Night sky visibility planner",
		Long: `Reports where stars and other fixed targets sit in the sky from an
observing site, whether they rise or stay circumpolar, how close the Moon
is, and when they clear a minimum altitude.

Sites and targets come from a YAML config file; without one the three Deep
Space Network complexes and a bright-star catalogue are used.

Examples:
  ls-skyplan survey --site Canberra
  ls-skyplan trace Vega --hours 12 --step 5m
  ls-skyplan --lat 69.65 --lon 18.96 night --date 2024-06-21`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to configuration file (YAML)")
	flags.StringP("site", "s", "", "Site name from the configuration (default: first site)")
	flags.Float64("lat", 0, "Observer latitude in degrees, north positive (requires --lon)")
	flags.Float64("lon", 0, "Observer longitude in degrees, east positive (requires --lat)")
	flags.Float64("elevation", 0, "Observer elevation in meters (with --lat/--lon)")
	flags.String("at", "", "Observation instant, RFC3339 (default: now)")
	flags.Float64("min-alt", 0, "Minimum altitude in degrees (default: from config)")
	flags.StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	flags.String("ephemeris", "", "Ephemeris reduction (apparent, mean)")
	flags.Int("workers", 0, "Concurrent calculations (default: number of CPUs)")

	survey := newSurveyCmd(a)
	rootCmd.RunE = survey.RunE
	rootCmd.Flags().AddFlagSet(survey.Flags())

	rootCmd.AddCommand(
		survey,
		newClassifyCmd(a),
		newTraceCmd(a),
		newMoonCmd(a),
		newNightCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the planner.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	site, err := resolveSite(cmd, cfg)
	if err != nil {
		return err
	}

	atFlag, err := flags.GetString("at")
	if err != nil {
		return fmt.Errorf("failed to get at flag: %w", err)
	}
	at, err := parseInstant(atFlag, time.Now)
	if err != nil {
		return err
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	provider := ephem.New(ephem.ParseMode(cfg.Ephemeris))
	logger.Debug("site %s (%.4f, %.4f), ephemeris %s", site.Name, site.LatDeg, site.LonDeg, provider.Name())

	a.cfg = cfg
	a.logger = logger
	a.planner = plan.New(astro.NewCalculator(provider), logger.With("site", site.Name), plan.WithWorkers(cfg.Workers))
	a.site = site
	a.at = at
	a.minAlt = cfg.MinimumAltitude
	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.LogLevel = v
	}
	if flags.Changed("ephemeris") {
		v, err := flags.GetString("ephemeris")
		if err != nil {
			return err
		}
		cfg.Ephemeris = v
	}
	if flags.Changed("min-alt") {
		v, err := flags.GetFloat64("min-alt")
		if err != nil {
			return err
		}
		cfg.MinimumAltitude = v
	}
	if flags.Changed("workers") {
		v, err := flags.GetInt("workers")
		if err != nil {
			return err
		}
		cfg.Workers = v
	}
	return nil
}

// resolveSite picks the observer: --lat/--lon first, then --site, then the
// first configured site.
func resolveSite(cmd *cobra.Command, cfg *config.Config) (astro.ObserverInfo, error) {
	flags := cmd.Flags()

	hasLat, hasLon := flags.Changed("lat"), flags.Changed("lon")
	if hasLat != hasLon {
		return astro.ObserverInfo{}, fmt.Errorf("--lat and --lon must be given together")
	}
	if hasLat {
		lat, _ := flags.GetFloat64("lat")
		lon, _ := flags.GetFloat64("lon")
		elev, _ := flags.GetFloat64("elevation")
		if lat < -90 || lat > 90 {
			return astro.ObserverInfo{}, fmt.Errorf("--lat %v out of range [-90, 90]", lat)
		}
		if lon < -180 || lon > 180 {
			return astro.ObserverInfo{}, fmt.Errorf("--lon %v out of range [-180, 180]", lon)
		}
		return config.Site{Name: "Custom", Latitude: lat, Longitude: lon, Elevation: elev}.Observer(), nil
	}

	name, err := flags.GetString("site")
	if err != nil {
		return astro.ObserverInfo{}, fmt.Errorf("failed to get site flag: %w", err)
	}
	site, ok := cfg.Site(name)
	if !ok {
		return astro.ObserverInfo{}, fmt.Errorf("unknown site %q", name)
	}
	return site.Observer(), nil
}

// parseInstant parses an RFC3339 instant. An empty string means now.
func parseInstant(s string, now func() time.Time) (time.Time, error) {
	if s == "" {
		return now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want RFC3339, e.g. 2024-06-21T22:00:00Z", s)
	}
	return t, nil
}
