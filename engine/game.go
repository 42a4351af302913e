package engine

import (
	"math/rand/v2"
	"time"
)

const (
	// LockDelay is how long a grounded piece waits before it locks.
	LockDelay = 500 * time.Millisecond
	// MaxLockResets bounds how often movement may restart the lock delay.
	MaxLockResets = 15

	spawnRow     = 1
	spawnRowLong = 0
	spawnCol     = Width/2 - 1
)

// State is the play state of a Game.
type State uint8

const (
	Playing State = iota
	Paused
	GameOver
)

// String returns a lower-case name for s.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// LockResult describes the most recent lock.
type LockResult struct {
	Piece   Piece
	Lines   int
	Spin    SpinKind
	Perfect bool
	// Points awarded by the lock rules, excluding drop points.
	Points int
}

// Game owns one board, the active piece, the hold slot, the score and the
// timing state. A Game is not safe for concurrent use; use Clone to get an
// independent copy for simulation.
type Game struct {
	board     Board
	active    Piece
	hasActive bool
	held      Shape
	hasHeld   bool
	canHold   bool
	state     State
	score     Score

	source    PieceSource
	newSource SourceFactory
	seeder    rand.PCG

	sinceGravity time.Duration
	gravity      time.Duration

	lockActive  bool
	lockElapsed time.Duration
	lockResets  int

	last    LockResult
	hasLast bool
}

// NewGame returns a game fed by a 7-bag seeded from seed, with its first
// piece spawned.
func NewGame(seed uint64) *Game {
	return NewGameWithSource(NewBagSource, seed)
}

// NewGameWithSource returns a game whose pieces come from sources built by
// factory. The factory is called again on every Reset with a fresh seed
// derived from seed.
func NewGameWithSource(factory SourceFactory, seed uint64) *Game {
	g := &Game{
		newSource: factory,
		seeder:    *rand.NewPCG(seed, ^seed),
	}
	g.Reset()
	return g
}

// Reset clears the board, score, hold slot and timers, replaces the piece
// source with a fresh one and spawns a new piece.
func (g *Game) Reset() {
	g.board.Clear()
	g.hasActive = false
	g.hasHeld = false
	g.canHold = true
	g.state = Playing
	g.score = newScore()
	g.source = g.newSource(g.seeder.Uint64())
	g.sinceGravity = 0
	g.gravity = GravityInterval(g.score.Level)
	g.clearLockDelay()
	g.last, g.hasLast = LockResult{}, false
	g.spawn(g.source.Next())
}

// Clone returns a fully independent copy of g, including its piece source.
func (g *Game) Clone() *Game {
	c := *g
	c.source = g.source.Clone()
	return &c
}

// Cell returns the locked cell at (row, col). The active piece is not part of
// the board.
func (g *Game) Cell(row, col int) Cell {
	return g.board.Get(row, col)
}

// Board returns a copy of the locked cells.
func (g *Game) Board() Board {
	return g.board
}

// Active returns the falling piece, if there is one.
func (g *Game) Active() (Piece, bool) {
	return g.active, g.hasActive
}

// Ghost returns where the active piece would land on a hard drop.
func (g *Game) Ghost() (Piece, bool) {
	if !g.hasActive {
		return Piece{}, false
	}
	p := g.active
	for g.board.CanPlace(p.Down()) {
		p = p.Down()
	}
	return p, true
}

// Held returns the shape in the hold slot, if any.
func (g *Game) Held() (Shape, bool) {
	return g.held, g.hasHeld
}

// CanHold reports whether Hold is currently allowed.
func (g *Game) CanHold() bool {
	return g.canHold && g.playable()
}

// State returns whether the game is playing, paused or over.
func (g *Game) State() State {
	return g.state
}

// Score returns the current points, level and cleared lines.
func (g *Game) Score() Score {
	return g.score
}

// Preview returns up to n upcoming shapes.
func (g *Game) Preview(n int) []Shape {
	return g.source.Peek(n)
}

// GravityInterval returns the current time between automatic drops.
func (g *Game) GravityInterval() time.Duration {
	return g.gravity
}

// LockDelay reports whether lock delay is running, how long it has run and
// how many resets have been spent.
func (g *Game) LockDelay() (active bool, elapsed time.Duration, resets int) {
	return g.lockActive, g.lockElapsed, g.lockResets
}

// LastLock returns the outcome of the most recent lock.
func (g *Game) LastLock() (LockResult, bool) {
	return g.last, g.hasLast
}

// TogglePause switches between Playing and Paused. It does nothing once the
// game is over.
func (g *Game) TogglePause() {
	switch g.state {
	case Playing:
		g.state = Paused
	case Paused:
		g.state = Playing
	}
}

func (g *Game) playable() bool {
	return g.state == Playing && g.hasActive
}

// try replaces the active piece with p when it fits.
func (g *Game) try(p Piece) bool {
	if !g.playable() || !g.board.CanPlace(p) {
		return false
	}
	g.active = p
	return true
}

// MoveLeft shifts the active piece one column left.
func (g *Game) MoveLeft() bool {
	if !g.try(g.active.Left()) {
		return false
	}
	g.resetLockDelay()
	return true
}

// MoveRight shifts the active piece one column right.
func (g *Game) MoveRight() bool {
	if !g.try(g.active.Right()) {
		return false
	}
	g.resetLockDelay()
	return true
}

// SoftDrop moves the piece down one row for one point. When the piece is
// blocked it starts the lock delay instead of locking.
func (g *Game) SoftDrop() bool {
	if !g.playable() {
		return false
	}
	if !g.try(g.active.Down()) {
		if !g.lockActive {
			g.startLockDelay()
		}
		return false
	}
	g.score.Points++
	g.resetLockDelay()
	return true
}

// RotateClockwise turns the active piece clockwise, trying wall kicks.
func (g *Game) RotateClockwise() bool {
	return g.rotate(Clockwise)
}

// RotateCounterClockwise turns the active piece counter-clockwise, trying
// wall kicks.
func (g *Game) RotateCounterClockwise() bool {
	return g.rotate(CounterClockwise)
}

func (g *Game) rotate(dir Direction) bool {
	if !g.playable() {
		return false
	}
	rotated, _, ok := Rotate(&g.board, g.active, dir)
	if !ok {
		return false
	}
	g.active = rotated
	g.resetLockDelay()
	return true
}

// HardDrop drops the piece as far as it goes, awards two points per row and
// locks it immediately.
func (g *Game) HardDrop() bool {
	if !g.playable() {
		return false
	}
	distance := 0
	for g.board.CanPlace(g.active.Down()) {
		g.active = g.active.Down()
		distance++
	}
	g.score.Points += 2 * distance
	g.lock()
	return true
}

// Hold moves the active shape into the hold slot. An empty slot pulls the
// next piece from the source; otherwise the held shape is spawned in its
// place. Hold is unavailable again until the next lock.
func (g *Game) Hold() bool {
	if !g.CanHold() {
		return false
	}
	current := g.active.Shape
	held, hadHeld := g.held, g.hasHeld
	g.held, g.hasHeld = current, true
	g.canHold = false
	g.hasActive = false
	g.clearLockDelay()
	if hadHeld {
		g.spawn(held)
	} else {
		g.spawn(g.source.Next())
	}
	return true
}

// Update advances gravity and lock delay by elapsed. It returns false when
// the game is not playing.
func (g *Game) Update(elapsed time.Duration) bool {
	if g.state != Playing {
		return false
	}
	g.sinceGravity += elapsed
	if g.sinceGravity >= g.gravity {
		g.sinceGravity = 0
		if g.hasActive {
			if g.board.CanPlace(g.active.Down()) {
				g.active = g.active.Down()
				g.clearLockDelay()
			} else if !g.lockActive {
				g.startLockDelay()
			}
		}
	}
	if g.lockActive {
		g.lockElapsed += elapsed
		if g.lockElapsed >= LockDelay {
			g.lock()
		}
	}
	return true
}

func (g *Game) startLockDelay() {
	g.lockActive = true
	g.lockElapsed = 0
	g.lockResets = 0
}

func (g *Game) resetLockDelay() {
	if g.lockActive && g.lockResets < MaxLockResets {
		g.lockElapsed = 0
		g.lockResets++
	}
}

func (g *Game) clearLockDelay() {
	g.lockActive = false
	g.lockElapsed = 0
	g.lockResets = 0
}

// diagonals around a T pivot: top-left, top-right, bottom-left, bottom-right.
var diagonals = [4]Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// frontCorners are the two diagonals on the pointing side of a T.
var frontCorners = [numOrientations][2]Point{
	North: {{1, -1}, {1, 1}},
	East:  {{-1, -1}, {1, -1}},
	South: {{-1, -1}, {-1, 1}},
	West:  {{-1, 1}, {1, 1}},
}

// classifySpin applies the three-corner rule to p before it is committed.
// Off-board corners count as filled.
func (g *Game) classifySpin(p Piece) SpinKind {
	if p.Shape != T {
		return SpinNone
	}
	pivot := p.Pivot()
	filled := 0
	for _, d := range diagonals {
		c := pivot.Add(d)
		if g.board.Blocked(c.Row, c.Col) {
			filled++
		}
	}
	if filled < 3 {
		return SpinNone
	}
	for _, d := range frontCorners[p.Orientation] {
		c := pivot.Add(d)
		if g.board.Blocked(c.Row, c.Col) {
			return SpinFull
		}
	}
	return SpinMini
}

func (g *Game) lock() {
	if !g.hasActive {
		return
	}
	p := g.active
	spin := g.classifySpin(p)
	g.board.Place(p)
	g.hasActive = false
	lines := g.board.ClearLines()
	perfect := lines > 0 && g.board.IsEmpty()
	points := g.score.award(lines, spin, perfect)
	g.gravity = GravityInterval(g.score.Level)
	g.canHold = true
	g.clearLockDelay()
	g.last = LockResult{Piece: p, Lines: lines, Spin: spin, Perfect: perfect, Points: points}
	g.hasLast = true
	g.spawn(g.source.Next())
}

// spawn places a new piece of shape s at the spawn point, or ends the game
// when it does not fit.
func (g *Game) spawn(s Shape) bool {
	row := spawnRow
	if s == I {
		row = spawnRowLong
	}
	p := NewPiece(s, row, spawnCol)
	if !g.board.CanPlace(p) {
		g.state = GameOver
		g.hasActive = false
		return false
	}
	g.active = p
	g.hasActive = true
	return true
}
