package registry

import (
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Resize(core.RuntimeConfig) {}
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }
func (g stubGame) Summary() core.MatchSummary { return core.MatchSummary{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Game { return stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "Stub zz-stub" {
				t.Errorf("title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() should fail for unknown IDs")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return stubGame{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-dup", func() Game { return stubGame{id: "zz-dup"} })
}
