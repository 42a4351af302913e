package engine

import "time"

// SpinKind classifies a T piece lock.
type SpinKind uint8

const (
	SpinNone SpinKind = iota
	SpinMini
	SpinFull
)

// String returns "none", "mini" or "full".
func (k SpinKind) String() string {
	switch k {
	case SpinMini:
		return "mini"
	case SpinFull:
		return "full"
	}
	return "none"
}

// LinesPerLevel is how many cleared lines advance the level.
const LinesPerLevel = 10

// Score is the running tally of a game.
type Score struct {
	Points int
	Level  int
	Lines  int
}

func newScore() Score {
	return Score{Level: 1}
}

// LinePoints returns the base award, before the level multiplier, for a lock
// clearing lines with the given spin. Combinations without an entry in the
// guideline table award nothing.
func LinePoints(lines int, spin SpinKind) int {
	switch spin {
	case SpinFull:
		switch lines {
		case 0:
			return 400
		case 1:
			return 800
		case 2:
			return 1200
		case 3:
			return 1600
		}
	case SpinMini:
		switch lines {
		case 0:
			return 100
		case 1:
			return 200
		case 2:
			return 400
		}
	default:
		switch lines {
		case 1:
			return 100
		case 2:
			return 300
		case 3:
			return 500
		case 4:
			return 800
		}
	}
	return 0
}

// PerfectClearBonus returns the base bonus for emptying the board with a
// clear of the given size.
func PerfectClearBonus(lines int) int {
	switch lines {
	case 1:
		return 800
	case 2:
		return 1200
	case 3:
		return 1800
	case 4:
		return 2000
	}
	return 0
}

// award applies the lock rules at the current level and returns the points
// added. The level is recomputed afterwards.
func (s *Score) award(lines int, spin SpinKind, perfect bool) int {
	points := LinePoints(lines, spin) * s.Level
	if perfect {
		points += PerfectClearBonus(lines) * s.Level
	}
	s.Points += points
	s.Lines += lines
	s.Level = s.Lines/LinesPerLevel + 1
	return points
}

// gravityFrames is the number of 60Hz frames per gravity step, by level.
// Levels past the end use the last entry.
var gravityFrames = [...]int{
	60, 48, 36, 28, 22, 16, 12, 8, 6, // 1-9
	4, 4, 4, // 10-12
	3, 3, 3, // 13-15
	2, 2, 2, // 16-18
	1, // 19+
}

// GravityInterval returns the time between automatic one-row drops at level.
func GravityInterval(level int) time.Duration {
	idx := min(max(level-1, 0), len(gravityFrames)-1)
	return time.Duration(gravityFrames[idx]*1000/60) * time.Millisecond
}
