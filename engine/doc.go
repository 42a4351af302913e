// Package engine implements the rules of a guideline-style falling-block
// game: piece geometry, the board, wall-kick rotation, the 7-bag piece
// source and the time-driven game controller.
package engine
