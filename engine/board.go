package engine

import "strings"

const (
	// Width is the number of board columns.
	Width = 10
	// Height is the number of board rows, including the hidden rows.
	Height = 22
	// VisibleHeight is the number of rows shown to a player.
	VisibleHeight = 20
	// HiddenRows sit above the visible field at the top of the grid.
	HiddenRows = Height - VisibleHeight
)

// Cell is either Empty or filled by a shape. The shape is kept for display
// only and has no effect on play.
type Cell uint8

// Empty is the zero Cell.
const Empty Cell = 0

// FilledBy returns a cell occupied by shape s.
func FilledBy(s Shape) Cell {
	return Cell(s) + 1
}

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool {
	return c != Empty
}

// Shape returns the shape that filled the cell, if any.
func (c Cell) Shape() (Shape, bool) {
	if c == Empty {
		return 0, false
	}
	return Shape(c - 1), true
}

// Board is a fixed Width x Height grid. The zero value is an empty board and
// copying a Board copies every cell.
type Board struct {
	cells [Height][Width]Cell
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// Get returns the cell at (row, col). Out-of-range positions read as Empty.
func (b *Board) Get(row, col int) Cell {
	if !inBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// Set writes the cell at (row, col) and reports whether the position exists.
func (b *Board) Set(row, col int, c Cell) bool {
	if !inBounds(row, col) {
		return false
	}
	b.cells[row][col] = c
	return true
}

// Filled reports whether (row, col) is on the board and occupied.
func (b *Board) Filled(row, col int) bool {
	return inBounds(row, col) && b.cells[row][col].Filled()
}

// Blocked reports whether (row, col) is occupied or off the board.
func (b *Board) Blocked(row, col int) bool {
	return !inBounds(row, col) || b.cells[row][col].Filled()
}

// CanPlace reports whether every cell of p is on the board and empty.
func (b *Board) CanPlace(p Piece) bool {
	for _, c := range p.Cells() {
		if b.Blocked(c.Row, c.Col) {
			return false
		}
	}
	return true
}

// Place commits p to the board. It returns false and leaves the board
// untouched when p does not fit.
func (b *Board) Place(p Piece) bool {
	if !b.CanPlace(p) {
		return false
	}
	for _, c := range p.Cells() {
		b.cells[c.Row][c.Col] = FilledBy(p.Shape)
	}
	return true
}

// RowComplete reports whether every cell of row is occupied.
func (b *Board) RowComplete(row int) bool {
	if row < 0 || row >= Height {
		return false
	}
	for _, c := range b.cells[row] {
		if !c.Filled() {
			return false
		}
	}
	return true
}

// ClearLines removes every complete row, bottom to top, and returns how many
// were removed. Each removal shifts the rows above it down by one; the same
// index is checked again because a complete row may have moved into it.
func (b *Board) ClearLines() int {
	cleared := 0
	for row := Height - 1; row >= 0; {
		if b.RowComplete(row) {
			b.removeRow(row)
			cleared++
			continue
		}
		row--
	}
	return cleared
}

func (b *Board) removeRow(row int) {
	for r := row; r > 0; r-- {
		b.cells[r] = b.cells[r-1]
	}
	b.cells[0] = [Width]Cell{}
}

// TopBlocked reports whether anything occupies row 0.
func (b *Board) TopBlocked() bool {
	for _, c := range b.cells[0] {
		if c.Filled() {
			return true
		}
	}
	return false
}

// Clear empties the board.
func (b *Board) Clear() {
	b.cells = [Height][Width]Cell{}
}

// IsEmpty reports whether no cell is occupied. After a line clear this is a
// perfect clear.
func (b *Board) IsEmpty() bool {
	for row := range Height {
		for _, c := range b.cells[row] {
			if c.Filled() {
				return false
			}
		}
	}
	return true
}

// String draws the board with '#' for filled and '.' for empty cells, one
// line per row.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range Height {
		for _, c := range b.cells[row] {
			if c.Filled() {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
