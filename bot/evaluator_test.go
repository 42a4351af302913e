package bot_test

import (
	"testing"

	"github.com/plus3/stacker/bot"
	"github.com/plus3/stacker/engine"
	"github.com/stretchr/testify/assert"
)

func column(b *engine.Board, col, height int, holes ...int) {
	skip := make(map[int]bool, len(holes))
	for _, row := range holes {
		skip[row] = true
	}
	for row := engine.Height - height; row < engine.Height; row++ {
		if !skip[row] {
			b.Set(row, col, engine.FilledBy(engine.J))
		}
	}
}

func TestMetrics(t *testing.T) {
	var b engine.Board
	column(&b, 0, 5)
	column(&b, 2, 5, 19)

	m := bot.NewEvaluator(bot.DefaultWeights()).Metrics(&b)
	assert.Equal(t, [engine.Width]int{5, 0, 5}, m.Heights)
	assert.Equal(t, 10, m.AggregateHeight)
	assert.Equal(t, 1, m.Holes)
	assert.Equal(t, 0, m.CompleteLines)
	assert.Equal(t, 15, m.Bumpiness)
	assert.Equal(t, 25, m.Wells)
}

func TestMetricsEdgeWell(t *testing.T) {
	var b engine.Board
	column(&b, 1, 4)

	m := bot.NewEvaluator(bot.DefaultWeights()).Metrics(&b)
	assert.Equal(t, 16, m.Wells, "edge column compares against its only neighbor")
	assert.Equal(t, 8, m.Bumpiness)
}

func TestMetricsShallowWellIgnored(t *testing.T) {
	var b engine.Board
	column(&b, 0, 2)
	column(&b, 2, 2)

	m := bot.NewEvaluator(bot.DefaultWeights()).Metrics(&b)
	assert.Zero(t, m.Wells)
}

func TestMetricsCompleteLines(t *testing.T) {
	var b engine.Board
	for col := range engine.Width {
		column(&b, col, 1)
	}

	m := bot.NewEvaluator(bot.DefaultWeights()).Metrics(&b)
	assert.Equal(t, 1, m.CompleteLines)
	assert.Equal(t, engine.Width, m.AggregateHeight)
	assert.Zero(t, m.Bumpiness)
}

func TestEvaluateEmptyBoard(t *testing.T) {
	var b engine.Board
	assert.Zero(t, bot.NewEvaluator(bot.DefaultWeights()).Evaluate(&b))
}

func TestEvaluatePenalizesHoles(t *testing.T) {
	var flat, holed engine.Board
	for col := range engine.Width - 1 {
		column(&flat, col, 2)
		if col == 3 {
			column(&holed, col, 2, engine.Height-1)
		} else {
			column(&holed, col, 2)
		}
	}

	e := bot.NewEvaluator(bot.DefaultWeights())
	mf, mh := e.Metrics(&flat), e.Metrics(&holed)
	assert.Equal(t, mf.AggregateHeight, mh.AggregateHeight)
	assert.Equal(t, mf.Bumpiness, mh.Bumpiness)
	assert.Equal(t, mf.Wells, mh.Wells)
	assert.Equal(t, mf.CompleteLines, mh.CompleteLines)
	assert.Equal(t, 1, mh.Holes)

	assert.Greater(t, e.Evaluate(&flat), e.Evaluate(&holed))
}

func TestLandingHeightIsInert(t *testing.T) {
	var b engine.Board
	column(&b, 4, 6)

	w := bot.DefaultWeights()
	base := bot.NewEvaluator(w).Evaluate(&b)
	w.LandingHeight = 100
	assert.Equal(t, base, bot.NewEvaluator(w).Evaluate(&b))
}
