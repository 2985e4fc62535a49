package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

func newSimGame(variant string, seed int64, autoplay bool) *pong.Game {
	game := pong.NewWithConfig(variant, config.DefaultPongConfig(variant))
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	game.SetAutopilot(autoplay)
	return game
}

func TestSimulateDeterministic(t *testing.T) {
	run := func() simReport {
		rep, err := simulate(newSimGame(config.VariantPong, 42, true), 5000, 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		return rep
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed gave different reports:\n%+v\n%+v", a, b)
	}
	if a.PlayerHits == 0 || a.CPUHits == 0 {
		t.Errorf("autoplay should produce rallies: %+v", a)
	}
}

func TestSimulateHaltsAfterMatch(t *testing.T) {
	rep, err := simulate(newSimGame(config.VariantPong, 3, false), 200000, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !rep.GameOver || max(rep.PlayerScore, rep.CPUScore) != 12 {
		t.Errorf("match should halt once a side reaches 12: %+v", rep)
	}
	if rep.Matches != 1 {
		t.Errorf("matches = %d", rep.Matches)
	}
}

func TestSimulateSnapshots(t *testing.T) {
	var frames []int
	_, err := simulate(newSimGame(config.VariantClassic, 1, true), 300, 100, func(s pong.Snapshot) error {
		frames = append(frames, s.Frame)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(frames) != 3 || frames[0] != 100 || frames[2] != 300 {
		t.Errorf("snapshot frames = %v", frames)
	}
}

func TestSnapshotDumpWritesStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.yaml")
	dump, err := openDump(path)
	if err != nil {
		t.Fatalf("openDump() failed: %v", err)
	}

	_, err = simulate(newSimGame(config.VariantClassic, 1, true), 120, 60, dump.Write)
	if err != nil {
		t.Fatal(err)
	}
	if err := dump.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "variant: pong-classic"); n != 2 {
		t.Errorf("expected 2 snapshot documents, got %d:\n%s", n, data)
	}
}

func TestSnapshotDumpReportsCloseError(t *testing.T) {
	errDisk := errors.New("disk full")
	var buf bytes.Buffer
	dump := newSnapshotDump(&buf, func() error { return errDisk })

	if err := dump.Write(pong.Snapshot{Variant: config.VariantPong}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := dump.Close(); !errors.Is(err, errDisk) {
		t.Errorf("Close() = %v, expected the destination's close error", err)
	}
	if !strings.Contains(buf.String(), "variant: pong") {
		t.Errorf("encoder should flush before closing, got %q", buf.String())
	}
}
