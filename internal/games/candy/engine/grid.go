package engine

import (
	"fmt"
	"strings"
)

// Grid is a square, row-major matrix of symbols.
// Grids returned by the engine are copies; mutating them does not affect play.
type Grid struct {
	size  int
	cells []Symbol
}

// NewGrid creates a size×size grid with every cell Empty.
func NewGrid(size int) Grid {
	return Grid{
		size:  size,
		cells: make([]Symbol, size*size),
	}
}

// GridFromRows builds a grid from explicit rows. All rows must have the same
// length as the number of rows.
func GridFromRows(rows [][]Symbol) (Grid, error) {
	n := len(rows)
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("engine: row %d has %d cells, want %d", r, len(row), n)
		}
		copy(g.cells[r*n:(r+1)*n], row)
	}
	return g, nil
}

// Size returns the number of rows (and columns).
func (g Grid) Size() int {
	return g.size
}

// InBounds reports whether p lies on the grid.
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// At returns the symbol at p, or Empty when p is out of bounds.
func (g Grid) At(p Position) Symbol {
	if !g.InBounds(p) {
		return Empty
	}
	return g.cells[p.Row*g.size+p.Col]
}

// Set places s at p. Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, s Symbol) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Row*g.size+p.Col] = s
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := Grid{size: g.size, cells: make([]Symbol, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g Grid) Equal(other Grid) bool {
	if g.size != other.size || len(g.cells) != len(other.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the grid as a slice of rows (copied).
func (g Grid) Rows() [][]Symbol {
	rows := make([][]Symbol, g.size)
	for r := range g.size {
		rows[r] = make([]Symbol, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// CountEmpty returns the number of Empty cells.
func (g Grid) CountEmpty() int {
	n := 0
	for _, s := range g.cells {
		if s == Empty {
			n++
		}
	}
	return n
}

// Full reports whether every cell holds a symbol.
func (g Grid) Full() bool {
	return g.CountEmpty() == 0
}

// String renders the grid with one letter per symbol ('.' for Empty).
// Useful in test failure output.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.size {
			s := g.cells[r*g.size+c]
			if s == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('A' + s - 1))
			}
		}
	}
	return sb.String()
}

// swap exchanges the symbols at a and b.
func (g *Grid) swap(a, b Position) {
	ia := a.Row*g.size + a.Col
	ib := b.Row*g.size + b.Col
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// fill assigns a random symbol to every cell, Empty or not.
func (g *Grid) fill(src Source, symbols int) {
	for i := range g.cells {
		g.cells[i] = randomSymbol(src, symbols)
	}
}
