package game

import (
	"strings"
	"testing"

	"github.com/ZBemo/simple-pirate-sim/config"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	config.MustInit("")
	g := NewGameWithOptions(Options{Seed: 42, Headless: true, StepsPerUpdate: 1})
	t.Cleanup(g.Unload)
	return g
}

func TestEchoCommand(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("echo hello world")
	if got != "hello world" {
		t.Errorf("echo = %q, want %q", got, "hello world")
	}
}

func TestHelpListsCommands(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("help")
	want := "Available commands: echo, exit, help, move, raycast"
	if got != want {
		t.Errorf("help = %q, want %q", got, want)
	}
}

func TestExitCommand(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("exit")
	if got != "Exiting" {
		t.Errorf("exit = %q, want %q", got, "Exiting")
	}
	if !g.ExitRequested() {
		t.Error("exit command did not request shutdown")
	}
}

func TestMoveCommand(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("move Player 500 500 5")
	want := "Moved Player to [500, 500, 5]"
	if got != want {
		t.Errorf("move = %q, want %q", got, want)
	}

	tr := g.transformMap.Get(g.player)
	if wantPos := g.stretch.World(tilegrid.IVec3{X: 500, Y: 500, Z: 5}); tr.Translation != wantPos {
		t.Errorf("player translation = %v, want %v", tr.Translation, wantPos)
	}
}

func TestMoveUnknownEntity(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("move Ghost 0 0 0")
	if want := "No entity named 'Ghost'"; got != want {
		t.Errorf("move = %q, want %q", got, want)
	}
}

func TestMoveWrongArity(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("move Player")
	if want := "Incorrect length: expected 4 arguments but was given 1"; got != want {
		t.Errorf("move = %q, want %q", got, want)
	}
}

func TestMoveInvalidCoordinate(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("move Player 1 two 3")
	if !strings.HasPrefix(got, "Invalid arguments: error '") {
		t.Errorf("move = %q, want invalid-arguments error", got)
	}
	if !strings.Contains(got, "invalid syntax") {
		t.Errorf("move = %q, want parse error detail", got)
	}
}

func TestRaycastWrongArity(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("raycast 0 0")
	if want := "Incorrect length: expected 6 arguments but was given 2"; got != want {
		t.Errorf("raycast = %q, want %q", got, want)
	}
}

func TestRaycastInvalidArgs(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("raycast a 0 0 1 0 0")
	if !strings.HasPrefix(got, "Invalid arguments: error '") {
		t.Errorf("raycast = %q, want invalid-arguments error", got)
	}
}

func TestRaycastNoHits(t *testing.T) {
	g := newTestGame(t)

	got := g.registry.Dispatch("raycast 1000 1000 50 0 0 1")
	if want := "No entities on ray"; got != want {
		t.Errorf("raycast = %q, want %q", got, want)
	}
}

func TestRaycastHitsEntity(t *testing.T) {
	g := newTestGame(t)

	// Isolate the player far from the ships so the ray sees one entity.
	if got := g.registry.Dispatch("move Player 500 500 5"); !strings.HasPrefix(got, "Moved") {
		t.Fatalf("setup move failed: %q", got)
	}

	got := g.registry.Dispatch("raycast 500 500 10 0 0 -1")
	want := "Entity found in raycast:Player:[16000, 16000, 5]"
	if got != want {
		t.Errorf("raycast = %q, want %q", got, want)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	g := newTestGame(t)

	if got := g.registry.Dispatch("teleport 1 2 3"); got != "Command not found" {
		t.Errorf("dispatch = %q, want %q", got, "Command not found")
	}
}
