package bot

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/stacker/engine"
	"github.com/rs/zerolog"
)

// Stats describes the search behind the most recent Step.
type Stats struct {
	// Candidates is how many moves the Finder produced.
	Candidates int
	// Evaluated is how many resulting boards were scored.
	Evaluated int
	// Duplicates landed on a placement that was already scored.
	Duplicates int
	// Rejected failed to replay.
	Rejected  int
	BestScore float64
	Best      Move
}

// Bot is a greedy one-piece player. A Bot keeps scratch state between steps
// and is not safe for concurrent use; run one Bot per goroutine.
type Bot struct {
	finder    *Finder
	evaluator *Evaluator
	logger    zerolog.Logger

	avoidTopOut bool

	seen  *intmap.Map[uint64, float64]
	stats Stats
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the logger that receives one debug event per move.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithWeights replaces the default evaluator weights.
func WithWeights(w Weights) Option {
	return func(b *Bot) {
		b.evaluator.Weights = w
	}
}

// WithMaxCandidates caps the moves considered per piece.
func WithMaxCandidates(n int) Option {
	return func(b *Bot) {
		b.finder = NewFinder(n)
	}
}

// WithAvoidTopOut makes the bot prefer any candidate that keeps the game
// going over a higher scoring one that ends it.
func WithAvoidTopOut() Option {
	return func(b *Bot) {
		b.avoidTopOut = true
	}
}

// New creates a Bot with the default weights and candidate cap.
func New(opts ...Option) *Bot {
	b := &Bot{
		finder:    NewFinder(DefaultMaxCandidates),
		evaluator: NewEvaluator(DefaultWeights()),
		logger:    zerolog.Nop(),
		seen:      intmap.New[uint64, float64](128),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LastStats returns the search statistics of the most recent Step.
func (b *Bot) LastStats() Stats {
	return b.stats
}

// placementKey identifies where a candidate locked: the sorted board indices
// of its four cells, plus whether hold was used to get there.
func placementKey(p engine.Piece, held bool) uint64 {
	var idx [4]int
	for i, c := range p.Cells() {
		idx[i] = c.Row*engine.Width + c.Col
	}
	slices.Sort(idx[:])

	var key uint64
	for _, v := range idx {
		key = key<<8 | uint64(v)
	}
	if held {
		key |= 1 << 32
	}
	return key
}

// Step picks the best candidate for the active piece and plays it on g. It
// returns false when there is nothing to play, either because g has no
// candidates or because none of them could be replayed.
//
// The highest score wins and ties keep the earliest candidate. With
// WithAvoidTopOut, candidates that end the game are only chosen when every
// candidate does.
func (b *Bot) Step(g *engine.Game) bool {
	b.stats = Stats{}
	b.seen.Clear()

	candidates := b.finder.Candidates(g)
	b.stats.Candidates = len(candidates)
	if len(candidates) == 0 {
		return false
	}

	best := -1
	var bestScore float64
	bestLoses := false

	for i, m := range candidates {
		trial := g.Clone()
		if !Apply(trial, m) {
			b.stats.Rejected++
			continue
		}

		last, ok := trial.LastLock()
		if !ok {
			b.stats.Rejected++
			continue
		}
		key := placementKey(last.Piece, m.Hold)
		if _, dup := b.seen.Get(key); dup {
			b.stats.Duplicates++
			continue
		}

		board := trial.Board()
		score := b.evaluator.Evaluate(&board)
		b.seen.Put(key, score)
		b.stats.Evaluated++

		loses := trial.State() == engine.GameOver
		if best < 0 || b.better(score, bestScore, loses, bestLoses) {
			best, bestScore, bestLoses = i, score, loses
		}
	}

	if best < 0 {
		b.logger.Debug().
			Int("candidates", b.stats.Candidates).
			Int("rejected", b.stats.Rejected).
			Msg("no playable move")
		return false
	}

	move := candidates[best]
	b.stats.Best = move
	b.stats.BestScore = bestScore
	if !Apply(g, move) {
		return false
	}

	b.logger.Debug().
		Stringer("move", move).
		Float64("score", bestScore).
		Int("candidates", b.stats.Candidates).
		Int("evaluated", b.stats.Evaluated).
		Int("duplicates", b.stats.Duplicates).
		Int("rejected", b.stats.Rejected).
		Msg("move")
	return true
}

func (b *Bot) better(score, bestScore float64, loses, bestLoses bool) bool {
	if b.avoidTopOut && loses != bestLoses {
		return !loses
	}
	return score > bestScore
}

// Play steps g until the game stops playing, no move is found or maxPieces
// moves have been made. A maxPieces of zero means no limit. It returns the
// number of moves made.
func (b *Bot) Play(g *engine.Game, maxPieces int) int {
	placed := 0
	for g.State() == engine.Playing {
		if maxPieces > 0 && placed >= maxPieces {
			break
		}
		if !b.Step(g) {
			break
		}
		placed++
	}
	return placed
}
