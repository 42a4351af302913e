package main

import (
	"context"
	"time"

	"github.com/plus3/stacker/bot"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/engine"
	"github.com/rs/zerolog"
)

// playGame runs one bot game until it ends, hits the piece limit or ctx is
// done. Game i uses seed cfg.Seed+i so runs are reproducible.
func playGame(ctx context.Context, cfg *config.Config, i int, logger zerolog.Logger) GameResult {
	res := GameResult{Index: i, Seed: cfg.Seed + uint64(i)}
	if ctx.Err() != nil {
		return res
	}
	res.Started = true

	logger = logger.With().Int("game", i).Uint64("seed", res.Seed).Logger()
	game := engine.NewGame(res.Seed)
	player := bot.New(cfg.BotOptions(logger)...)

	for game.State() == engine.Playing {
		if ctx.Err() != nil {
			break
		}
		if cfg.MaxPieces > 0 && res.Pieces >= cfg.MaxPieces {
			break
		}

		start := time.Now()
		ok := player.Step(game)
		res.Steps = append(res.Steps, time.Since(start))
		if !ok {
			res.Stuck = game.State() == engine.Playing
			break
		}
		res.Pieces++

		last, _ := game.LastLock()
		switch last.Spin {
		case engine.SpinFull:
			res.Spins++
		case engine.SpinMini:
			res.Minis++
		}
		if last.Perfect {
			res.Perfect++
		}
		if last.Lines == 4 {
			res.Tetris++
		}
	}

	res.Score = game.Score()
	res.State = game.State()
	logger.Info().
		Int("pieces", res.Pieces).
		Int("lines", res.Score.Lines).
		Int("points", res.Score.Points).
		Stringer("state", res.State).
		Bool("stuck", res.Stuck).
		Msg("game finished")
	return res
}
