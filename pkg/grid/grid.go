// Package grid implements the rectangular integer matrices backing maze
// layouts, plus the text codec used to read and write them.
//
// A Grid stores element values; the codec resolves display tokens through
// an element.Set in both directions. Formatting can add an index header and
// row labels for human editing; parsing recognizes and discards them, so
// format → parse round-trips to the identical value matrix.
package grid

import (
	"github.com/brain-sim/antmaze/pkg/errors"
)

// Grid is a rectangular integer matrix. Rows are indexed first.
// The zero value is an empty grid; use New for a filled one.
type Grid [][]int

// New creates a rows×cols grid filled with fill.
func New(rows, cols, fill int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]int, cols)
		for c := range g[r] {
			g[r][c] = fill
		}
	}
	return g
}

// Dims returns the grid's height and width.
// Width is 0 for an empty grid.
func (g Grid) Dims() (rows, cols int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Validate checks that the grid is non-empty and rectangular.
func (g Grid) Validate() error {
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return errors.New(errors.ErrCodeEmptyGrid, "grid must have at least one row and one column")
	}
	for r, row := range g {
		if len(row) != cols {
			return errors.New(errors.ErrCodeRaggedGrid, "row %d has %d columns, want %d", r, len(row), cols)
		}
	}
	return nil
}

// At returns the value at (row, col) with bounds checking.
func (g Grid) At(row, col int) (int, error) {
	if err := g.check(row, col); err != nil {
		return 0, err
	}
	return g[row][col], nil
}

// Set writes value at (row, col) with bounds checking.
func (g Grid) Set(row, col, value int) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	g[row][col] = value
	return nil
}

func (g Grid) check(row, col int) error {
	if row < 0 || col < 0 {
		return errors.New(errors.ErrCodeOutOfRange, "row/col must be >= 0, got (%d, %d)", row, col)
	}
	if row >= len(g) {
		return errors.New(errors.ErrCodeOutOfRange, "row %d out of range (height %d)", row, len(g))
	}
	if col >= len(g[row]) {
		return errors.New(errors.ErrCodeOutOfRange, "col %d out of range (width %d)", col, len(g[row]))
	}
	return nil
}

// Clone returns an independent deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = make([]int, len(row))
		copy(out[r], row)
	}
	return out
}

// Equal reports whether two grids hold the same values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r, row := range g {
		if len(row) != len(other[r]) {
			return false
		}
		for c, v := range row {
			if v != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Resize returns a copy of the grid resized to rows×cols.
//
// Growth appends fill values at the tail (bottom rows, rightmost columns);
// shrinking truncates from the tail. The head of the grid is never
// touched, so shrinking and re-growing is lossless for the surviving
// region. Collaborators depend on this exact convention.
func (g Grid) Resize(rows, cols, fill int) (Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeEmptyGrid, "resize target must be at least 1x1, got %dx%d", rows, cols)
	}

	out := make(Grid, rows)
	for r := 0; r < rows; r++ {
		row := make([]int, cols)
		for c := 0; c < cols; c++ {
			if r < len(g) && c < len(g[r]) {
				row[c] = g[r][c]
			} else {
				row[c] = fill
			}
		}
		out[r] = row
	}
	return out, nil
}
