package engine

// Direction selects which way a rotation turns.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

// kickTable holds the ordered (row, col) offsets tried for each
// from -> to transition. Only adjacent transitions are populated.
type kickTable [numOrientations][numOrientations][]Point

var zeroKick = []Point{{0, 0}}

// Kicks for J, L, S, T and Z.
var standardKicks = kickTable{
	North: {
		East: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		West: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	},
	East: {
		North: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		South: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	},
	South: {
		East: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		West: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	},
	West: {
		South: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		North: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	},
}

var longKicks = kickTable{
	North: {
		East: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		West: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	},
	East: {
		North: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		South: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	},
	South: {
		East: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		West: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	},
	West: {
		South: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		North: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	},
}

// KickOffsets returns the offsets tried, in order, when shape turns from one
// orientation to another. The zero offset always comes first. The returned
// slice is shared and must not be modified.
func KickOffsets(shape Shape, from, to Orientation) []Point {
	var table *kickTable
	switch shape {
	case O:
		return zeroKick
	case I:
		table = &longKicks
	default:
		table = &standardKicks
	}
	if kicks := table[from][to]; len(kicks) > 0 {
		return kicks
	}
	return zeroKick
}

// Rotate turns p one step in dir and resolves wall kicks against b. It
// returns the placed piece and the kick offset that made it legal, or false
// when no offset fits, in which case p is unchanged.
func Rotate(b *Board, p Piece, dir Direction) (Piece, Point, bool) {
	to := p.Orientation.Clockwise()
	if dir == CounterClockwise {
		to = p.Orientation.CounterClockwise()
	}
	turned := p.Turned(to)
	for _, kick := range KickOffsets(p.Shape, p.Orientation, to) {
		candidate := turned.Shifted(kick)
		if b.CanPlace(candidate) {
			return candidate, kick, true
		}
	}
	return p, Point{}, false
}
