package engine

// Shape identifies one of the seven tetromino kinds.
type Shape uint8

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
)

const numShapes = 7

// Shapes lists every shape in table order.
var Shapes = [numShapes]Shape{I, O, T, S, Z, J, L}

// String returns the letter of s.
func (s Shape) String() string {
	switch s {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	}
	return "?"
}

// Orientation is one of the four rotation states of a piece.
type Orientation uint8

const (
	North Orientation = iota
	East
	South
	West
)

const numOrientations = 4

// String returns the compass name of o.
func (o Orientation) String() string {
	switch o {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "?"
}

// Clockwise returns the next orientation turning clockwise.
func (o Orientation) Clockwise() Orientation {
	return (o + 1) % numOrientations
}

// CounterClockwise returns the next orientation turning counter-clockwise.
func (o Orientation) CounterClockwise() Orientation {
	return (o + numOrientations - 1) % numOrientations
}

// Point is a signed (row, column) pair. Row 0 is the top of the board.
type Point struct {
	Row, Col int
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{Row: p.Row + q.Row, Col: p.Col + q.Col}
}

// shapeOffsets is the only source of piece geometry: four cells relative to
// the pivot for every shape and orientation.
var shapeOffsets = [numShapes][numOrientations][4]Point{
	I: {
		North: {{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		East:  {{-1, 1}, {0, 1}, {1, 1}, {2, 1}},
		South: {{1, -1}, {1, 0}, {1, 1}, {1, 2}},
		West:  {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	},
	O: {
		North: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		East:  {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		South: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		West:  {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	T: {
		North: {{0, 0}, {0, -1}, {0, 1}, {1, 0}},
		East:  {{0, 0}, {-1, 0}, {1, 0}, {0, 1}},
		South: {{0, 0}, {0, -1}, {0, 1}, {-1, 0}},
		West:  {{0, 0}, {-1, 0}, {1, 0}, {0, -1}},
	},
	S: {
		North: {{0, 0}, {0, -1}, {1, 0}, {1, 1}},
		East:  {{0, 0}, {1, 0}, {0, 1}, {-1, 1}},
		South: {{0, 0}, {0, 1}, {-1, 0}, {-1, -1}},
		West:  {{0, 0}, {-1, 0}, {0, -1}, {1, -1}},
	},
	Z: {
		North: {{0, 0}, {0, 1}, {1, 0}, {1, -1}},
		East:  {{0, 0}, {-1, 0}, {0, -1}, {1, -1}},
		South: {{0, 0}, {0, -1}, {-1, 0}, {-1, 1}},
		West:  {{0, 0}, {1, 0}, {0, 1}, {-1, 1}},
	},
	J: {
		North: {{0, 0}, {0, -1}, {0, 1}, {-1, 1}},
		East:  {{0, 0}, {-1, 0}, {1, 0}, {-1, -1}},
		South: {{0, 0}, {0, 1}, {0, -1}, {1, -1}},
		West:  {{0, 0}, {1, 0}, {-1, 0}, {1, 1}},
	},
	L: {
		North: {{0, 0}, {0, -1}, {0, 1}, {1, 1}},
		East:  {{0, 0}, {-1, 0}, {1, 0}, {1, -1}},
		South: {{0, 0}, {0, 1}, {0, -1}, {-1, -1}},
		West:  {{0, 0}, {1, 0}, {-1, 0}, {-1, 1}},
	},
}

// Piece is the active tetromino: a shape, an orientation and a pivot.
// Pieces are values; every transform returns a new Piece and never checks
// legality.
type Piece struct {
	Shape       Shape
	Orientation Orientation
	Row, Col    int
}

// NewPiece returns a North-facing piece with its pivot at (row, col).
func NewPiece(shape Shape, row, col int) Piece {
	return Piece{Shape: shape, Row: row, Col: col}
}

// Pivot returns the pivot position.
func (p Piece) Pivot() Point {
	return Point{Row: p.Row, Col: p.Col}
}

// Cells returns the four board positions the piece occupies.
func (p Piece) Cells() [4]Point {
	offsets := shapeOffsets[p.Shape][p.Orientation]
	var cells [4]Point
	for i, off := range offsets {
		cells[i] = p.Pivot().Add(off)
	}
	return cells
}

// Left returns p one column to the left.
func (p Piece) Left() Piece {
	p.Col--
	return p
}

// Right returns p one column to the right.
func (p Piece) Right() Piece {
	p.Col++
	return p
}

// Down returns p one row lower.
func (p Piece) Down() Piece {
	p.Row++
	return p
}

// Shifted returns p moved by off.
func (p Piece) Shifted(off Point) Piece {
	p.Row += off.Row
	p.Col += off.Col
	return p
}

// Turned returns p with its orientation set to o, pivot unchanged.
func (p Piece) Turned(o Orientation) Piece {
	p.Orientation = o
	return p
}
