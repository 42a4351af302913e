package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestSummarize(t *testing.T) {
	r := &Report{Results: []GameResult{
		{Started: true, Pieces: 10, Score: engine.Score{Points: 500, Lines: 4}, State: engine.GameOver, Tetris: 1, Steps: []time.Duration{time.Millisecond}},
		{Started: true, Pieces: 5, Score: engine.Score{Points: 900, Lines: 2}, Spins: 1, Steps: []time.Duration{3 * time.Millisecond}},
		{Pieces: 99},
	}}
	r.Summarize()

	assert.Equal(t, Totals{
		Played:    2,
		Pieces:    15,
		Lines:     6,
		Points:    1400,
		BestScore: 900,
		TopOuts:   1,
		Spins:     1,
		Tetris:    1,
	}, r.Totals)
	assert.Equal(t, 2*time.Millisecond, r.StepTime.Avg)
}

func TestPlayGame(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPieces = 20
	cfg.Seed = 4
	cfg.Weights.Wells = 0
	cfg.AvoidTopOut = true

	res := playGame(context.Background(), &cfg, 1, zerolog.Nop())
	assert.True(t, res.Started)
	assert.Equal(t, uint64(5), res.Seed)
	assert.Equal(t, 20, res.Pieces)
	assert.Len(t, res.Steps, 20)
	assert.Equal(t, engine.Playing, res.State)
	assert.False(t, res.Stuck)
}

func TestPlayGameCanceled(t *testing.T) {
	cfg := config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := playGame(ctx, &cfg, 0, zerolog.Nop())
	assert.False(t, res.Started)
	assert.Zero(t, res.Pieces)
}

func TestRunAndGenerate(t *testing.T) {
	cfg := config.Default()
	cfg.Games = 3
	cfg.Workers = 2
	cfg.MaxPieces = 15
	cfg.Duration = 0
	cfg.Weights.Wells = 0
	cfg.AvoidTopOut = true

	report, err := run(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Totals.Played)
	assert.Equal(t, 45, report.Totals.Pieces)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Games Played:** 3")
	assert.Contains(t, out, "**Piece Limit:** 15")
	assert.Contains(t, out, "seed=2 pieces=15")
	assert.NotContains(t, out, "GC Pause")
}
