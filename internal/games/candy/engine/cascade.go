package engine

// clearRuns empties every cell covered by runs. A cell shared by two runs is
// cleared once. Returns the number of cells emptied.
func (g *Grid) clearRuns(runs []MatchRun) int {
	cleared := 0
	for _, run := range runs {
		for _, p := range run.Cells() {
			if g.At(p) != Empty {
				g.Set(p, Empty)
				cleared++
			}
		}
	}
	return cleared
}

// drop slides the non-Empty cells of every column to the bottom, keeping
// their relative order. Empty cells end up at the top of each column.
func (g *Grid) drop() {
	n := g.size
	for col := range n {
		write := n - 1
		for row := n - 1; row >= 0; row-- {
			p := Pos(row, col)
			s := g.At(p)
			if s == Empty {
				continue
			}
			if row != write {
				g.Set(Pos(write, col), s)
				g.Set(p, Empty)
			}
			write--
		}
	}
}

// refill assigns a random symbol to every Empty cell in row-major order.
// Returns the number of cells filled.
func (g *Grid) refill(src Source, symbols int) int {
	filled := 0
	for i, s := range g.cells {
		if s == Empty {
			g.cells[i] = randomSymbol(src, symbols)
			filled++
		}
	}
	return filled
}
