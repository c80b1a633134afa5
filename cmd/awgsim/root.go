package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aditya-x-tiwari/Wet-Dream/internal/config"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/cycle"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/evaporator"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/logger"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/psychro"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/refprop"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/results"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/sweep"
	"github.com/aditya-x-tiwari/Wet-Dream/internal/weather"
)

// RootOptions holds the command line flags. Anything set here overrides
// the config file.
type RootOptions struct {
	ConfigPath  string
	OutputPath  string
	WeatherFile string
	LogLevel    string
}

// NewRootCommand creates the awgsim command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "awgsim",
		Short: "Atmospheric water generation sweep simulator",
		Long: "Simulates a vapor-compression refrigeration cycle coupled to an air-side\n" +
			"evaporator, sweeps dry-air mass flow rates, and reports the operating\n" +
			"point that maximizes water yield per unit of compressor energy.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "results CSV path (overrides config)")
	cmd.Flags().StringVar(&opts.WeatherFile, "weather-file", "", "ambient conditions CSV instead of the weather API")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func run(opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Errorw("error reading config", "err", err)
		return err
	}
	if opts.OutputPath != "" {
		cfg.OutputPath = opts.OutputPath
	}
	if opts.WeatherFile != "" {
		cfg.WeatherFile = opts.WeatherFile
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	log := logger.Get(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Errorw("invalid configuration", "err", err)
		return err
	}

	// ambient conditions: one fetch, bounded in time, fatal on failure
	var src weather.Source
	if cfg.WeatherFile != "" {
		log.Infow("reading ambient conditions from file", "path", cfg.WeatherFile)
		src = &weather.File{Path: cfg.WeatherFile}
	} else {
		log.Infow("fetching ambient conditions from OpenWeatherMap",
			"lat", cfg.Latitude, "lon", cfg.Longitude)
		src = weather.NewOpenWeatherMap(cfg.APIKey, cfg.Latitude, cfg.Longitude)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	amb, err := src.Fetch(ctx)
	if err != nil {
		log.Errorw("ambient conditions unavailable", "err", err)
		return err
	}
	log.Infow("ambient conditions",
		"temp_c", amb.TemperatureC, "pressure_pa", amb.PressurePa, "rh", amb.RelHumidity)

	engine := &sweep.Engine{
		Refrigerant: cfg.Refrigerant,
		Offsets: cycle.Offsets{
			EvapDew: cfg.EvapDewOffsetC,
			CondAmb: cfg.CondAmbOffsetC,
		},
		Model: &evaporator.Model{
			U:              cfg.UEvap,
			A:              cfg.AEvap,
			TubeDiameter:   cfg.TubeDiameterM,
			TubeCount:      cfg.TubeCount,
			AirViscosity:   cfg.AirViscosity,
			LatentHeat:     cfg.LatentHeat,
			TargetApproach: cfg.TargetApproachC,
		},
		Psychro: psychro.SI{},
		Props:   refprop.NewTable(),
	}

	candidates := sweep.Candidates(cfg.SweepStart, cfg.SweepStop, cfg.SweepStep)

	start := time.Now()
	res, err := engine.Run(amb, candidates)
	if err != nil {
		log.Errorw("sweep failed", "err", err)
		return err
	}
	log.Infow("sweep finished",
		"run_id", res.RunID, "candidates", len(res.Rows), "elapsed", time.Since(start))

	if err := results.WriteCSV(cfg.OutputPath, res.Rows); err != nil {
		log.Errorw("saving results failed", "err", err)
		return err
	}
	log.Infow("results saved", "path", cfg.OutputPath)

	results.PrintSummary(os.Stdout, res)
	return nil
}
