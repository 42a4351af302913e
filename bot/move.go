package bot

import (
	"fmt"
	"strings"

	"github.com/plus3/stacker/engine"
)

// DefaultMaxCandidates caps how many moves a Finder generates per piece.
const DefaultMaxCandidates = 500

// Move is a replayable sequence of player actions: optional hold, then
// rotations, then horizontal steps, then an optional hard drop.
type Move struct {
	Hold                bool
	RotateCW, RotateCCW int
	Left, Right         int
	HardDrop            bool
}

// String lists the steps of m, for example "cw1 left3 drop".
func (m Move) String() string {
	var parts []string
	if m.Hold {
		parts = append(parts, "hold")
	}
	if m.RotateCW > 0 {
		parts = append(parts, fmt.Sprintf("cw%d", m.RotateCW))
	}
	if m.RotateCCW > 0 {
		parts = append(parts, fmt.Sprintf("ccw%d", m.RotateCCW))
	}
	if m.Left > 0 {
		parts = append(parts, fmt.Sprintf("left%d", m.Left))
	}
	if m.Right > 0 {
		parts = append(parts, fmt.Sprintf("right%d", m.Right))
	}
	if m.HardDrop {
		parts = append(parts, "drop")
	}
	if len(parts) == 0 {
		return "noop"
	}
	return strings.Join(parts, " ")
}

// Finder enumerates candidate moves. It only reaches placements made of a
// pure rotation followed by a pure shift, so tucks and spin setups that need
// interleaved input are never generated.
type Finder struct {
	MaxCandidates int
}

// NewFinder returns a Finder capped at maxCandidates. Values below one use
// DefaultMaxCandidates.
func NewFinder(maxCandidates int) *Finder {
	if maxCandidates < 1 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Finder{MaxCandidates: maxCandidates}
}

// Candidates lists moves for the active piece of g: the hold move when hold
// is available, then every clockwise rotation count 0..3 against every
// column, then counter-clockwise counts 1..3. g is never modified.
func (f *Finder) Candidates(g *engine.Game) []Move {
	limit := f.MaxCandidates
	if limit < 1 {
		limit = DefaultMaxCandidates
	}
	if _, ok := g.Active(); !ok {
		return nil
	}

	moves := make([]Move, 0, min(limit, 1+7*engine.Width))
	add := func(m Move) bool {
		if len(moves) >= limit {
			return false
		}
		moves = append(moves, m)
		return true
	}

	if g.CanHold() {
		if !add(Move{Hold: true, HardDrop: true}) {
			return moves
		}
	}

	for cw := range 4 {
		if !f.shifts(g, cw, engine.Clockwise, add) {
			return moves
		}
	}
	for ccw := 1; ccw < 4; ccw++ {
		if !f.shifts(g, ccw, engine.CounterClockwise, add) {
			return moves
		}
	}
	return moves
}

// shifts adds one move per target column for a piece rotated turns times in
// dir. It returns false once the cap is hit. A rotation count that cannot
// be performed still adds its moves, shifted from wherever the piece
// stopped turning; those moves fail on replay.
func (f *Finder) shifts(g *engine.Game, turns int, dir engine.Direction, add func(Move) bool) bool {
	trial := g.Clone()
	for range turns {
		var ok bool
		if dir == engine.Clockwise {
			ok = trial.RotateClockwise()
		} else {
			ok = trial.RotateCounterClockwise()
		}
		if !ok {
			break
		}
	}
	p, ok := trial.Active()
	if !ok {
		return true
	}

	for col := range engine.Width {
		m := Move{HardDrop: true}
		if dir == engine.Clockwise {
			m.RotateCW = turns
		} else {
			m.RotateCCW = turns
		}
		if d := col - p.Col; d < 0 {
			m.Left = -d
		} else {
			m.Right = d
		}
		if !add(m) {
			return false
		}
	}
	return true
}

// IsValid reports whether m replays cleanly on a copy of g.
func (f *Finder) IsValid(g *engine.Game, m Move) bool {
	return Apply(g.Clone(), m)
}

// Apply replays m on g and reports whether every step succeeded. It stops at
// the first failing step and does not undo the steps before it, so callers
// that need to recover should apply to a clone.
func Apply(g *engine.Game, m Move) bool {
	if m.Hold && g.CanHold() {
		if !g.Hold() {
			return false
		}
	}
	if !repeat(m.RotateCW, g.RotateClockwise) {
		return false
	}
	if !repeat(m.RotateCCW, g.RotateCounterClockwise) {
		return false
	}
	if !repeat(m.Left, g.MoveLeft) {
		return false
	}
	if !repeat(m.Right, g.MoveRight) {
		return false
	}
	if m.HardDrop {
		return g.HardDrop()
	}
	return true
}

func repeat(n int, action func() bool) bool {
	for range n {
		if !action() {
			return false
		}
	}
	return true
}
