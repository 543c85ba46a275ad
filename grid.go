package gridastar

import (
	"errors"
	"fmt"
)

// Cell is the state of one grid square.
type Cell uint8

const (
	Free Cell = iota
	Blocked
)

// Position addresses a grid square by row and column. It is the identity key
// of the search: the registry maps are keyed by Position value, never by node
// pointer.
type Position struct {
	Row, Col int
}

var (
	// ErrEmptyGrid reports a nil grid or non-positive dimensions.
	ErrEmptyGrid = errors.New("grid has no cells")
	// ErrOutOfBounds reports a start or goal outside the grid.
	ErrOutOfBounds = errors.New("position outside grid bounds")
	// ErrRaggedGrid reports rows of unequal length passed to ParseGrid.
	ErrRaggedGrid = errors.New("grid rows differ in length")
)

// Grid is a rows x cols matrix of cells. The search treats it as read-only.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid returns an all-free grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, rows, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}, nil
}

// ParseGrid builds a grid from one string per row: '.' is free, '#' is
// blocked.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	grid, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		if len(line) != grid.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, r, len(line), grid.cols)
		}
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '.':
			case '#':
				grid.cells[r*grid.cols+c] = Blocked
			default:
				return nil, fmt.Errorf("unknown cell %q at row %d col %d", line[c], r, c)
			}
		}
	}
	return grid, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Contains reports whether p lies within the grid bounds.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Blocked reports whether the cell at p is blocked. It panics if p is outside
// the grid; callers check Contains first.
func (g *Grid) Blocked(p Position) bool {
	return g.cells[g.index(p)] == Blocked
}

// SetBlocked marks the cell at p as blocked or free. It panics if p is
// outside the grid. Must not be called while a search on this grid is
// running.
func (g *Grid) SetBlocked(p Position, blocked bool) {
	state := Free
	if blocked {
		state = Blocked
	}
	g.cells[g.index(p)] = state
}

func (g *Grid) index(p Position) int {
	if !g.Contains(p) {
		panic(fmt.Sprintf("gridastar: position %v outside %dx%d grid", p, g.rows, g.cols))
	}
	return p.Row*g.cols + p.Col
}

// The four orthogonal movement directions: up, down, left, right. Expansion
// order matters only through the frontier's insertion-order tie-break.
var directions = [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// appendNeighbors appends the in-bounds, free orthogonal neighbors of p to
// buf and returns the extended slice.
func (g *Grid) appendNeighbors(buf []Position, p Position) []Position {
	for _, d := range directions {
		next := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.Contains(next) && !g.Blocked(next) {
			buf = append(buf, next)
		}
	}
	return buf
}
