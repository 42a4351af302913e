package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/plus3/stacker/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Read settings from this file instead of the user config directory.")
	duration := flag.Duration("duration", 0, "The total duration the run may take. Overrides the config file.")
	games := flag.Int("games", 0, "The number of games to play. Overrides the config file.")
	workers := flag.Int("workers", 0, "The number of games played at once. Overrides the config file.")
	seed := flag.Uint64("seed", 0, "The seed of the first game. Overrides the config file.")
	maxPieces := flag.Int("max-pieces", -1, "Stop each game after this many pieces, 0 for no limit. Overrides the config file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	saveConfig := flag.Bool("save-config", false, "Write the effective settings to the user config file and exit.")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Duration = config.Duration(*duration)
		case "games":
			cfg.Games = *games
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "max-pieces":
			cfg.MaxPieces = *maxPieces
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	if *saveConfig {
		path, err := cfg.Save()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
		log.Info().Str("path", path).Msg("config saved")
		return
	}

	report, err := run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n\n--- Self-Play Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// run plays cfg.Games games on at most cfg.Workers goroutines. A zero
// Duration means no time limit.
func run(cfg *config.Config) (*Report, error) {
	report := &Report{
		Duration:      time.Duration(cfg.Duration),
		Games:         cfg.Games,
		Workers:       cfg.Workers,
		Seed:          cfg.Seed,
		MaxPieces:     cfg.MaxPieces,
		MaxCandidates: cfg.MaxCandidates,
		Results:       make([]GameResult, cfg.Games),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Duration))
		defer cancel()
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	log.Info().
		Int("games", cfg.Games).
		Int("workers", cfg.Workers).
		Stringer("limit", report.Duration).
		Msg("starting self-play")

	startTime := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Games {
		g.Go(func() error {
			report.Results[i] = playGame(ctx, cfg, i, log.Logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("playing games: %w", err)
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Summarize()

	log.Info().
		Int("played", report.Totals.Played).
		Int("pieces", report.Totals.Pieces).
		Stringer("elapsed", report.TotalTime).
		Msg("self-play finished")
	return report, nil
}
