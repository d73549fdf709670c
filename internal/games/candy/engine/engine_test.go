package engine

import (
	"errors"
	"strings"
	"testing"
)

// parseGrid builds a grid from letter rows ('A'..'F', '.' for Empty).
func parseGrid(t *testing.T, rows ...string) Grid {
	t.Helper()
	out := make([][]Symbol, len(rows))
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		out[r] = make([]Symbol, len(line))
		for c, ch := range line {
			if ch != '.' {
				out[r][c] = Symbol(ch-'A') + 1
			}
		}
	}
	g, err := GridFromRows(out)
	if err != nil {
		t.Fatalf("GridFromRows: %v", err)
	}
	return g
}

// recorder collects hook invocations.
type recorder struct {
	matches     [][3]int
	successes   int
	invalids    int
	shuffles    int
	diagnostics []error
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnMatch: func(length, col, row int) {
			r.matches = append(r.matches, [3]int{length, col, row})
		},
		OnSuccessfulSwap: func() { r.successes++ },
		OnInvalidMove:    func() { r.invalids++ },
		OnShuffle:        func() { r.shuffles++ },
		OnDiagnostic:     func(err error) { r.diagnostics = append(r.diagnostics, err) },
	}
}

func newTestEngine(t *testing.T, src Source, rec *recorder) *Engine {
	t.Helper()
	p := DefaultParams()
	p.Source = src
	if rec != nil {
		p.Hooks = rec.hooks()
	}
	e, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// stableRows is a 6x6 board with no runs.
var stableRows = []string{
	"ACEACE",
	"BDFBDF",
	"CEACEA",
	"DFBDFB",
	"EACEAC",
	"FBDFBD",
}

// fourRunRows: swapping (4,3) with (5,3) turns the bottom row into ABAAAA.
var fourRunRows = []string{
	"ACEACE",
	"BDFBDF",
	"CEACEA",
	"DFBDFB",
	"EACAAC",
	"ABACAA",
}

// threeRunRows: swapping (4,4) with (5,4) turns the bottom row into AABAAA.
var threeRunRows = []string{
	"ACEACE",
	"BDFBDF",
	"CEACEA",
	"DFBDFB",
	"EACEAC",
	"AABACA",
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b Position
		want bool
	}{
		{Pos(0, 0), Pos(0, 1), true},
		{Pos(0, 0), Pos(1, 0), true},
		{Pos(3, 3), Pos(2, 3), true},
		{Pos(0, 0), Pos(1, 1), false},
		{Pos(0, 0), Pos(0, 2), false},
		{Pos(2, 2), Pos(2, 2), false},
	}

	for _, tt := range tests {
		if got := Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchRunCenter(t *testing.T) {
	tests := []struct {
		name string
		run  MatchRun
		want Position
	}{
		{"horizontal 3", MatchRun{Horizontal, Pos(5, 3), 3, 1}, Pos(5, 4)},
		{"horizontal 4", MatchRun{Horizontal, Pos(5, 2), 4, 1}, Pos(5, 3)},
		{"horizontal 5", MatchRun{Horizontal, Pos(0, 0), 5, 1}, Pos(0, 2)},
		{"vertical 3", MatchRun{Vertical, Pos(1, 4), 3, 1}, Pos(2, 4)},
		{"vertical 6", MatchRun{Vertical, Pos(0, 0), 6, 1}, Pos(2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.run.Center(); got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindRuns(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []MatchRun
	}{
		{
			name: "stable board",
			rows: stableRows,
			want: nil,
		},
		{
			name: "maximal horizontal run reported once",
			rows: []string{
				"AAAAB",
				"BCDEC",
				"CDECD",
				"DECDE",
				"ECDEC",
			},
			want: []MatchRun{{Horizontal, Pos(0, 0), 4, 1}},
		},
		{
			name: "shared cell reported in both runs",
			rows: []string{
				"BAC.D",
				"CAD.E",
				"AAA.F",
				"DBE.C",
				"EFC.D",
			},
			want: []MatchRun{
				{Horizontal, Pos(2, 0), 3, 1},
				{Vertical, Pos(0, 1), 3, 1},
			},
		},
		{
			name: "empty cells never match",
			rows: []string{
				"...AB",
				".BCDE",
				".CDEA",
				"ADEAB",
				"BEABC",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindRuns(parseGrid(t, tt.rows...))
			if len(got) != len(tt.want) {
				t.Fatalf("FindRuns() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("run %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDropPreservesColumnOrder(t *testing.T) {
	g := parseGrid(t,
		"AB.D",
		".C.A",
		"B..C",
		".DAB",
	)
	g.drop()
	want := parseGrid(t,
		"...D",
		".B.A",
		"AC.C",
		"BDAB",
	)
	if !g.Equal(want) {
		t.Errorf("drop() =\n%v\nwant\n%v", g, want)
	}
}

func TestInitializeProducesStableBoard(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		e := newTestEngine(t, NewSource(seed), nil)
		if !e.Initialize() {
			t.Fatalf("seed %d: Initialize rejected on idle engine", seed)
		}
		g := e.Grid()
		if !g.Full() {
			t.Errorf("seed %d: grid has %d empty cells", seed, g.CountEmpty())
		}
		if runs := FindRuns(g); len(runs) != 0 {
			t.Errorf("seed %d: grid has runs after Initialize: %v", seed, runs)
		}
		if e.State() != StateIdle {
			t.Errorf("seed %d: State() = %v, want idle", seed, e.State())
		}
	}
}

func TestInitializeDeterminism(t *testing.T) {
	a := newTestEngine(t, NewSource(7), nil)
	b := newTestEngine(t, NewSource(7), nil)
	a.Initialize()
	b.Initialize()
	if !a.Grid().Equal(b.Grid()) {
		t.Errorf("same seed produced different boards:\n%v\n\n%v", a.Grid(), b.Grid())
	}
}

func TestFourRunReportsSecondCell(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, NewSequenceSource(0, 1, 2, 3), rec)
	if err := e.Load(parseGrid(t, fourRunRows...)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := e.RequestSwap(Pos(4, 3), Pos(5, 3)); got != OutcomeCommitted {
		t.Fatalf("RequestSwap() = %v, want committed", got)
	}
	if len(rec.matches) != 1 {
		t.Fatalf("matches = %v, want exactly one", rec.matches)
	}
	if want := [3]int{4, 3, 5}; rec.matches[0] != want {
		t.Errorf("OnMatch(length, col, row) = %v, want %v", rec.matches[0], want)
	}
	if rec.successes != 1 || rec.invalids != 0 {
		t.Errorf("successes=%d invalids=%d, want 1/0", rec.successes, rec.invalids)
	}

	// cleared cells dropped one row, refill took A,B,C,D left to right
	want := parseGrid(t,
		"ACABCD",
		"BDEACE",
		"CEFBDF",
		"DFACEA",
		"EABDFB",
		"ABCCAC",
	)
	if got := e.Grid(); !got.Equal(want) {
		t.Errorf("grid after swap =\n%v\nwant\n%v", got, want)
	}
}

func TestThreeRunInMixedRow(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, NewSource(3), rec)
	if err := e.Load(parseGrid(t, threeRunRows...)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := e.RequestSwap(Pos(4, 4), Pos(5, 4)); got != OutcomeCommitted {
		t.Fatalf("RequestSwap() = %v, want committed", got)
	}
	if len(rec.matches) == 0 {
		t.Fatal("no match reported")
	}
	if want := [3]int{3, 4, 5}; rec.matches[0] != want {
		t.Errorf("first OnMatch = %v, want %v", rec.matches[0], want)
	}
}

func TestCommittedSwapLeavesStableBoard(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rec := &recorder{}
		e := newTestEngine(t, NewSource(seed), rec)
		e.Initialize()
		rec.matches = nil

		a, b, ok := e.FindMove()
		if !ok {
			t.Fatalf("seed %d: no move on a settled board", seed)
		}
		if got := e.RequestSwap(a, b); got != OutcomeCommitted {
			t.Fatalf("seed %d: RequestSwap(%v, %v) = %v, want committed", seed, a, b, got)
		}
		g := e.Grid()
		if !g.Full() {
			t.Errorf("seed %d: %d empty cells after swap", seed, g.CountEmpty())
		}
		if runs := FindRuns(g); len(runs) != 0 {
			t.Errorf("seed %d: runs remain after swap: %v", seed, runs)
		}
		if len(rec.matches) == 0 {
			t.Errorf("seed %d: committed swap reported no matches", seed)
		}
		if rec.successes != 1 {
			t.Errorf("seed %d: OnSuccessfulSwap fired %d times, want 1", seed, rec.successes)
		}
	}
}

func TestRejectedSwapsLeaveGridUnchanged(t *testing.T) {
	sameSymbol := append([]string(nil), stableRows...)
	sameSymbol[1] = "ADFBDF"

	tests := []struct {
		name string
		rows []string
		a, b Position
	}{
		{"no run formed", stableRows, Pos(0, 0), Pos(0, 1)},
		{"identical symbols", sameSymbol, Pos(0, 0), Pos(1, 0)},
		{"non adjacent", stableRows, Pos(0, 0), Pos(0, 2)},
		{"diagonal", stableRows, Pos(0, 0), Pos(1, 1)},
		{"same cell", stableRows, Pos(2, 2), Pos(2, 2)},
		{"off board", stableRows, Pos(0, 5), Pos(0, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(t, NewSource(1), rec)
			before := parseGrid(t, tt.rows...)
			if err := e.Load(before); err != nil {
				t.Fatalf("Load: %v", err)
			}

			if got := e.RequestSwap(tt.a, tt.b); got != OutcomeInvalid {
				t.Errorf("RequestSwap() = %v, want invalid", got)
			}
			if !e.Grid().Equal(before) {
				t.Errorf("grid changed:\n%v\nwant\n%v", e.Grid(), before)
			}
			if rec.invalids != 1 {
				t.Errorf("OnInvalidMove fired %d times, want 1", rec.invalids)
			}
			if len(rec.matches) != 0 || rec.successes != 0 {
				t.Errorf("unexpected callbacks: matches=%v successes=%d", rec.matches, rec.successes)
			}
			if e.State() != StateIdle {
				t.Errorf("State() = %v, want idle", e.State())
			}
		})
	}
}

func TestBusyGuard(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, NewSource(1), rec)
	if err := e.Load(parseGrid(t, fourRunRows...)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := e.BeginSwap(Pos(4, 3), Pos(5, 3)); got != OutcomePending {
		t.Fatalf("BeginSwap() = %v, want pending", got)
	}
	before := e.Grid()

	if got := e.RequestSwap(Pos(0, 0), Pos(0, 1)); got != OutcomeBusy {
		t.Errorf("second RequestSwap() = %v, want busy", got)
	}
	if got := e.BeginSwap(Pos(0, 0), Pos(0, 2)); got != OutcomeBusy {
		t.Errorf("non-adjacent BeginSwap() while busy = %v, want busy", got)
	}
	if e.Initialize() {
		t.Error("Initialize accepted while busy")
	}
	if err := e.Load(before); err == nil {
		t.Error("Load accepted while busy")
	}
	if !e.Grid().Equal(before) {
		t.Error("rejected calls changed the grid")
	}
	if rec.invalids != 0 || rec.successes != 0 || len(rec.matches) != 0 {
		t.Errorf("rejected calls fired callbacks: %+v", rec)
	}
	if e.State() != StateSwapping {
		t.Errorf("State() = %v, want swapping", e.State())
	}
}

func TestReentrantSwapFromCallbackIsRejected(t *testing.T) {
	var e *Engine
	var outcomes []Outcome
	successes := 0

	p := DefaultParams()
	p.Source = NewSource(5)
	p.Hooks = Hooks{
		OnMatch: func(int, int, int) {
			outcomes = append(outcomes, e.RequestSwap(Pos(0, 0), Pos(0, 1)))
		},
		OnSuccessfulSwap: func() {
			successes++
			outcomes = append(outcomes, e.RequestSwap(Pos(0, 0), Pos(1, 0)))
		},
	}
	var err error
	e, err = New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Load(parseGrid(t, fourRunRows...)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := e.RequestSwap(Pos(4, 3), Pos(5, 3)); got != OutcomeCommitted {
		t.Fatalf("RequestSwap() = %v, want committed", got)
	}
	if successes != 1 {
		t.Errorf("OnSuccessfulSwap fired %d times, want 1", successes)
	}
	if len(outcomes) < 2 {
		t.Fatalf("outcomes = %v, want at least one per hook", outcomes)
	}
	for i, o := range outcomes {
		if o != OutcomeBusy {
			t.Errorf("re-entrant call %d = %v, want busy", i, o)
		}
	}
}

func TestAdvancePhases(t *testing.T) {
	t.Run("committed", func(t *testing.T) {
		e := newTestEngine(t, NewSequenceSource(0, 1, 2, 3), nil)
		if err := e.Load(parseGrid(t, fourRunRows...)); err != nil {
			t.Fatalf("Load: %v", err)
		}
		e.BeginSwap(Pos(4, 3), Pos(5, 3))

		want := []Phase{PhaseSwap, PhaseClear, PhaseDrop, PhaseRefill, PhaseSettled}
		var frames []Frame
		for {
			f, done := e.Advance()
			frames = append(frames, f)
			if done {
				break
			}
		}
		if len(frames) != len(want) {
			t.Fatalf("got %d frames, want %d", len(frames), len(want))
		}
		for i, f := range frames {
			if f.Phase != want[i] {
				t.Errorf("frame %d phase = %v, want %v", i, f.Phase, want[i])
			}
		}

		clearFrame := frames[1]
		if clearFrame.Cleared != 4 || len(clearFrame.Runs) != 1 {
			t.Errorf("clear frame: cleared=%d runs=%v", clearFrame.Cleared, clearFrame.Runs)
		}
		for c := 2; c < 6; c++ {
			if s := clearFrame.Grid.At(Pos(5, c)); s != Empty {
				t.Errorf("cell (5,%d) = %v after clear, want Empty", c, s)
			}
		}

		dropFrame := frames[2]
		for c := 2; c < 6; c++ {
			if s := dropFrame.Grid.At(Pos(0, c)); s != Empty {
				t.Errorf("cell (0,%d) = %v after drop, want Empty", c, s)
			}
		}
		if dropFrame.Grid.CountEmpty() != clearFrame.Cleared {
			t.Errorf("drop changed empty count: %d, want %d", dropFrame.Grid.CountEmpty(), clearFrame.Cleared)
		}

		if frames[3].Refilled != clearFrame.Cleared {
			t.Errorf("refilled %d cells, cleared %d", frames[3].Refilled, clearFrame.Cleared)
		}
		if !frames[3].Grid.Full() {
			t.Error("grid not full after refill")
		}
	})

	t.Run("reverted", func(t *testing.T) {
		e := newTestEngine(t, NewSource(1), nil)
		before := parseGrid(t, stableRows...)
		if err := e.Load(before); err != nil {
			t.Fatalf("Load: %v", err)
		}
		e.BeginSwap(Pos(0, 0), Pos(0, 1))

		f, done := e.Advance()
		if f.Phase != PhaseSwap || done {
			t.Fatalf("first Advance = %v done=%v, want swap", f.Phase, done)
		}
		if f.Grid.At(Pos(0, 0)) != before.At(Pos(0, 1)) {
			t.Error("swap frame does not show the exchange")
		}
		if e.State() != StateResolving {
			t.Errorf("State() = %v, want resolving", e.State())
		}

		f, done = e.Advance()
		if f.Phase != PhaseRevert || !done {
			t.Fatalf("second Advance = %v done=%v, want revert", f.Phase, done)
		}
		if !f.Grid.Equal(before) {
			t.Error("revert frame differs from original grid")
		}
		if e.LastOutcome() != OutcomeInvalid {
			t.Errorf("LastOutcome() = %v, want invalid", e.LastOutcome())
		}
	})

	t.Run("idle", func(t *testing.T) {
		e := newTestEngine(t, NewSource(1), nil)
		f, done := e.Advance()
		if !done || f.Phase != PhaseSettled {
			t.Errorf("Advance on idle engine = %v done=%v", f.Phase, done)
		}
	})
}

func TestConservationAcrossCascades(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		e := newTestEngine(t, NewSource(seed), nil)
		e.Initialize()
		a, b, ok := e.FindMove()
		if !ok {
			t.Fatalf("seed %d: no move", seed)
		}
		e.BeginSwap(a, b)

		cleared := 0
		var beforeDrop Grid
		for {
			f, done := e.Advance()
			switch f.Phase {
			case PhaseClear:
				cleared = f.Cleared
				beforeDrop = f.Grid
			case PhaseDrop:
				for c := range f.Grid.Size() {
					if got, want := columnFilled(f.Grid, c), columnFilled(beforeDrop, c); got != want {
						t.Errorf("seed %d: column %d has %d candies after drop, want %d", seed, c, got, want)
					}
				}
			case PhaseRefill:
				if f.Refilled != cleared {
					t.Errorf("seed %d: refilled %d, cleared %d", seed, f.Refilled, cleared)
				}
				if !f.Grid.Full() {
					t.Errorf("seed %d: grid not full after refill", seed)
				}
			}
			if done {
				break
			}
		}
	}
}

func TestCascadeLimit(t *testing.T) {
	rec := &recorder{}
	p := DefaultParams()
	p.MaxCascade = 1
	p.Source = NewSequenceSource(0) // every refill is A, so runs keep forming
	p.Hooks = rec.hooks()
	e, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Load(parseGrid(t, fourRunRows...)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := e.RequestSwap(Pos(4, 3), Pos(5, 3)); got != OutcomeCommitted {
		t.Fatalf("RequestSwap() = %v, want committed", got)
	}
	if len(rec.diagnostics) == 0 {
		t.Fatal("no diagnostic reported")
	}
	if !errors.Is(rec.diagnostics[0], ErrCascadeLimit) {
		t.Errorf("diagnostic = %v, want ErrCascadeLimit", rec.diagnostics[0])
	}
	if !e.Grid().Full() {
		t.Error("grid not full after cascade limit")
	}
	if e.State() != StateIdle {
		t.Errorf("State() = %v, want idle", e.State())
	}
}

func TestDeadBoardIsReshuffled(t *testing.T) {
	dead := []int{
		0, 1, 2, 3,
		2, 3, 0, 1,
		0, 1, 2, 3,
		2, 3, 0, 1,
	}
	playable := []int{
		0, 0, 1, 2,
		2, 3, 0, 1,
		0, 1, 2, 3,
		2, 3, 0, 1,
	}
	src := NewSequenceSource(append(dead, playable...)...)

	rec := &recorder{}
	p := DefaultParams()
	p.Size = 4
	p.Symbols = 4
	p.Source = src
	p.Hooks = rec.hooks()
	e, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !e.Initialize() {
		t.Fatal("Initialize rejected")
	}
	if rec.shuffles != 1 {
		t.Errorf("OnShuffle fired %d times, want 1", rec.shuffles)
	}
	want := parseGrid(t,
		"AABC",
		"CDAB",
		"ABCD",
		"CDAB",
	)
	if got := e.Grid(); !got.Equal(want) {
		t.Errorf("grid after reshuffle =\n%v\nwant\n%v", got, want)
	}
	if src.Used() != 32 {
		t.Errorf("source consumed %d values, want 32", src.Used())
	}
	if len(rec.matches) != 0 {
		t.Errorf("reshuffle reported matches: %v", rec.matches)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"defaults", func(*Params) {}, false},
		{"too small", func(p *Params) { p.Size = 3 }, true},
		{"too large", func(p *Params) { p.Size = 13 }, true},
		{"too few symbols", func(p *Params) { p.Symbols = 2 }, true},
		{"most symbols", func(p *Params) { p.Symbols = MaxSymbols }, false},
		{"too many symbols", func(p *Params) { p.Symbols = MaxSymbols + 1 }, true},
		{"symbols past int8", func(p *Params) { p.Symbols = 256 }, true},
		{"zero cascade", func(p *Params) { p.MaxCascade = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func columnFilled(g Grid, col int) int {
	n := 0
	for r := range g.Size() {
		if g.At(Pos(r, col)) != Empty {
			n++
		}
	}
	return n
}
