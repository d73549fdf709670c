package registry

import (
	"testing"

	"github.com/vovakirdan/candy-bonus/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Error("Exists() mismatch")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create returned %q", g.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	if got := Title("zz_stub_b"); got != "Stub zz_stub_b" {
		t.Errorf("Title() = %q", got)
	}
	if got := Title("zz_missing"); got != "zz_missing" {
		t.Errorf("Title() of unknown id = %q", got)
	}

	list := List()
	idx := map[string]int{}
	for i, info := range list {
		idx[info.ID] = i
	}
	if idx["zz_stub_a"] > idx["zz_stub_b"] {
		t.Errorf("List() not sorted: %v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
