package engine

// FindRuns returns every maximal run of at least MinRunLength equal symbols.
// Rows are scanned first (top to bottom), then columns (left to right).
// A cell may belong to both a horizontal and a vertical run; both are returned.
// Empty cells never form runs.
func FindRuns(g Grid) []MatchRun {
	var runs []MatchRun
	n := g.Size()

	for row := range n {
		runs = scanLine(g, runs, Pos(row, 0), 0, 1, Horizontal)
	}
	for col := range n {
		runs = scanLine(g, runs, Pos(0, col), 1, 0, Vertical)
	}

	return runs
}

// scanLine walks one row or column from start in steps of (dRow, dCol) and
// appends the maximal runs it finds.
func scanLine(g Grid, runs []MatchRun, start Position, dRow, dCol int, o Orientation) []MatchRun {
	n := g.Size()
	i := 0
	for i < n {
		first := start.Add(dRow*i, dCol*i)
		sym := g.At(first)
		j := i + 1
		for j < n && g.At(start.Add(dRow*j, dCol*j)) == sym {
			j++
		}
		if sym != Empty && j-i >= MinRunLength {
			runs = append(runs, MatchRun{
				Orientation: o,
				Start:       first,
				Length:      j - i,
				Symbol:      sym,
			})
		}
		i = j
	}
	return runs
}

// HasRuns reports whether the grid contains at least one run.
func HasRuns(g Grid) bool {
	return len(FindRuns(g)) > 0
}

// FindMove searches for an adjacent swap that would produce at least one run.
// Cells are tried in row-major order, swapping right before down.
func FindMove(g Grid) (a, b Position, ok bool) {
	work := g.Clone()
	n := g.Size()
	for row := range n {
		for col := range n {
			from := Pos(row, col)
			for _, to := range []Position{from.Add(0, 1), from.Add(1, 0)} {
				if !work.InBounds(to) || work.At(from) == work.At(to) {
					continue
				}
				work.swap(from, to)
				found := HasRuns(work)
				work.swap(from, to)
				if found {
					return from, to, true
				}
			}
		}
	}
	return Position{}, Position{}, false
}

// HasPossibleMove reports whether any adjacent swap would produce a run.
func HasPossibleMove(g Grid) bool {
	_, _, ok := FindMove(g)
	return ok
}
