package bot_test

import (
	"bytes"
	"testing"

	"github.com/plus3/stacker/bot"
	"github.com/plus3/stacker/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepConsumesOnePiece(t *testing.T) {
	g := engine.NewGame(42)
	before := g.Preview(engine.PreviewSize)
	first, _ := g.Active()

	b := bot.New()
	require.True(t, b.Step(g))

	stats := b.LastStats()
	last, ok := g.LastLock()
	require.True(t, ok)
	_, active := g.Active()
	assert.True(t, active || g.State() == engine.GameOver)

	if stats.Best.Hold {
		assert.Equal(t, before[0], last.Piece.Shape)
		assert.Equal(t, before[2:], g.Preview(engine.PreviewSize-2))
		held, _ := g.Held()
		assert.Equal(t, first.Shape, held)
	} else {
		assert.Equal(t, first.Shape, last.Piece.Shape)
		assert.Equal(t, before[1:], g.Preview(engine.PreviewSize-1))
	}
}

func TestStepStats(t *testing.T) {
	g := engine.NewGame(3)
	b := bot.New()
	require.True(t, b.Step(g))

	s := b.LastStats()
	assert.Positive(t, s.Candidates)
	assert.Positive(t, s.Evaluated)
	assert.Equal(t, s.Candidates, s.Evaluated+s.Duplicates+s.Rejected)
	assert.True(t, s.Best.HardDrop)
}

func TestStepSkipsDuplicatePlacements(t *testing.T) {
	g := sequenceGame(engine.O, engine.O)
	b := bot.New()
	require.True(t, b.Step(g))

	s := b.LastStats()
	assert.Equal(t, 1+7*engine.Width, s.Candidates)
	assert.Equal(t, 10, s.Evaluated, "nine columns plus the hold placement")
	assert.Equal(t, 6*9, s.Duplicates)
	assert.Equal(t, 7, s.Rejected)
}

func TestStepGameOver(t *testing.T) {
	g := sequenceGame(engine.O)
	for g.HardDrop() {
	}

	b := bot.New()
	assert.False(t, b.Step(g))
	assert.Zero(t, b.LastStats().Candidates)
	assert.Zero(t, b.Play(g, 0))
}

func TestPlayIsDeterministic(t *testing.T) {
	a, b := engine.NewGame(7), engine.NewGame(7)

	placed := bot.New().Play(a, 40)
	assert.Positive(t, placed)
	assert.Equal(t, placed, bot.New().Play(b, 40))

	assert.Equal(t, a.State(), b.State())
	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, a.Board(), b.Board())
	assert.Equal(t, a.Preview(engine.PreviewSize), b.Preview(engine.PreviewSize))
}

func TestPlaySurvivesWithoutWellReward(t *testing.T) {
	w := bot.DefaultWeights()
	w.Wells = 0
	g := engine.NewGame(11)
	placed := bot.New(bot.WithWeights(w), bot.WithAvoidTopOut()).Play(g, 100)

	assert.Equal(t, 100, placed)
	assert.Equal(t, engine.Playing, g.State())
	assert.Positive(t, g.Score().Lines)
}

// towerGame stacks O pieces on columns 3 to 6 up to row 4, so an O landing
// on the tower blocks the next spawn.
func towerGame(t *testing.T) *engine.Game {
	t.Helper()
	g := sequenceGame(engine.O)
	for range 9 {
		require.True(t, bot.Apply(g, bot.Move{Left: 1, HardDrop: true}))
		require.True(t, bot.Apply(g, bot.Move{Right: 1, HardDrop: true}))
	}
	require.Equal(t, engine.Playing, g.State())
	return g
}

func TestStepPicksHighestScoreEvenWhenItTopsOut(t *testing.T) {
	// Rewarding bumpiness makes landing on the tower the best placement.
	g := towerGame(t)
	b := bot.New(bot.WithWeights(bot.Weights{Bumpiness: 1}))
	require.True(t, b.Step(g))

	s := b.LastStats()
	assert.Equal(t, 40.0, s.BestScore)
	assert.Equal(t, bot.Move{Hold: true, HardDrop: true}, s.Best)
	assert.Equal(t, engine.GameOver, g.State())
}

func TestStepWithAvoidTopOut(t *testing.T) {
	g := towerGame(t)
	b := bot.New(bot.WithWeights(bot.Weights{Bumpiness: 1}), bot.WithAvoidTopOut())
	require.True(t, b.Step(g))

	s := b.LastStats()
	assert.Equal(t, 38.0, s.BestScore)
	assert.Equal(t, bot.Move{Left: 4, HardDrop: true}, s.Best)
	assert.Equal(t, engine.Playing, g.State())
}

func TestWithMaxCandidates(t *testing.T) {
	g := sequenceGame(engine.T)
	b := bot.New(bot.WithMaxCandidates(3))
	require.True(t, b.Step(g))
	assert.Equal(t, 3, b.LastStats().Candidates)
}

func TestTiesKeepEarliestCandidate(t *testing.T) {
	g := sequenceGame(engine.T, engine.S)
	b := bot.New(bot.WithWeights(bot.Weights{}))
	require.True(t, b.Step(g))

	s := b.LastStats()
	assert.Zero(t, s.BestScore)
	assert.Equal(t, bot.Move{Hold: true, HardDrop: true}, s.Best)
	held, ok := g.Held()
	require.True(t, ok)
	assert.Equal(t, engine.T, held)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	b := bot.New(bot.WithLogger(logger))
	require.True(t, b.Step(engine.NewGame(1)))
	assert.Contains(t, buf.String(), `"message":"move"`)
	assert.Contains(t, buf.String(), `"evaluated":`)
}

func BenchmarkStep(b *testing.B) {
	g := engine.NewGame(1)
	player := bot.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !player.Step(g) {
			g.Reset()
		}
	}
}
