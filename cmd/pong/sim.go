package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	flagSimFrames   int
	flagSimWidth    int
	flagSimHeight   int
	flagSimAutoplay bool
	flagSimDump     string
	flagSimEvery    int
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless simulation",
	Long: `Run a variant without a terminal UI for a fixed number of frames and
print a YAML report. With the same seed and flags the report is identical
on every run.

By default the player paddle stays idle; --autoplay lets the CPU tracker
drive it too. --dump writes periodic state snapshots as a YAML stream
("-" for stdout).

Examples:
  pong sim --seed 42
  pong sim pong-classic --frames 20000 --autoplay
  pong sim --seed 7 --dump snapshots.yaml --every 60`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Number of ticks to simulate")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Virtual screen width in cells")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Virtual screen height in cells")
	simCmd.Flags().BoolVar(&flagSimAutoplay, "autoplay", false, "Let the CPU tracker drive the player paddle")
	simCmd.Flags().StringVar(&flagSimDump, "dump", "", "Write snapshots as YAML to this file (- for stdout)")
	simCmd.Flags().IntVar(&flagSimEvery, "every", 60, "Snapshot interval in frames for --dump")
}

// simReport summarizes a headless run.
type simReport struct {
	Variant      string  `yaml:"variant"`
	Seed         int64   `yaml:"seed"`
	Frames       int     `yaml:"frames"`
	PlayerScore  int     `yaml:"player_score"`
	CPUScore     int     `yaml:"cpu_score"`
	PlayerHits   int     `yaml:"player_hits"`
	CPUHits      int     `yaml:"cpu_hits"`
	WallBounces  int     `yaml:"wall_bounces"`
	Matches      int     `yaml:"matches_decided"`
	LongestRally int     `yaml:"longest_rally"`
	TopSpeed     float64 `yaml:"top_speed"`
	GameOver     bool    `yaml:"game_over"`
}

// simulate runs the game for frames ticks with empty input and calls
// onSnapshot every interval frames (interval <= 0 disables it).
func simulate(game *pong.Game, frames, interval int, onSnapshot func(pong.Snapshot) error) (simReport, error) {
	var rep simReport
	in := core.NewInputFrame()

	for i := 1; i <= frames; i++ {
		res := game.Step(in)
		ev := game.LastEvents()

		switch ev.PaddleHit {
		case pong.SideLeft:
			rep.PlayerHits++
		case pong.SideRight:
			rep.CPUHits++
		}
		if ev.WallBounce {
			rep.WallBounces++
		}
		if ev.Scored != pong.SideNone {
			log.Debug("point", "frame", i, "scorer", ev.Scored,
				"player", res.State.Score, "cpu", res.State.Opponent)
		}

		if interval > 0 && i%interval == 0 && onSnapshot != nil {
			if err := onSnapshot(game.Snapshot()); err != nil {
				return rep, err
			}
		}

		if res.State.GameOver {
			log.Info("match over", "frame", i)
			break
		}
	}

	sum := game.Summary()
	rep.Variant = game.ID()
	rep.Frames = game.Snapshot().Frame
	rep.PlayerScore = sum.PlayerScore
	rep.CPUScore = sum.OpponentScore
	rep.Matches = game.Matches()
	rep.LongestRally = sum.LongestRally
	rep.TopSpeed = sum.TopSpeed
	rep.GameOver = game.State().GameOver
	return rep, nil
}

func runSim(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}
	if flagSimFrames <= 0 {
		return fmt.Errorf("invalid --frames %d: must be positive", flagSimFrames)
	}

	game, err := loadGame(variant)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.DefaultConfig()
	rc.ScreenW = flagSimWidth
	rc.ScreenH = flagSimHeight
	rc.TickRate = flagFPS
	rc.Seed = seed
	game.Reset(rc)
	game.SetAutopilot(flagSimAutoplay)

	var onSnapshot func(pong.Snapshot) error
	var dump *snapshotDump
	interval := 0
	if flagSimDump != "" {
		dump, err = openDump(flagSimDump)
		if err != nil {
			return err
		}
		onSnapshot = dump.Write
		interval = flagSimEvery
	}

	log.Info("simulating", "variant", variant, "seed", seed, "frames", flagSimFrames, "autoplay", flagSimAutoplay)
	rep, err := simulate(game, flagSimFrames, interval, onSnapshot)
	if err != nil {
		err = fmt.Errorf("writing snapshots: %w", err)
	}
	if dump != nil {
		// The report goes out only once every snapshot reached the file
		err = errors.Join(err, dump.Close())
	}
	if err != nil {
		return err
	}
	rep.Seed = seed

	out, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	if flagSimDump == "-" {
		fmt.Println("---")
	}
	fmt.Print(string(out))
	return nil
}

// snapshotDump streams snapshots as a YAML document stream.
type snapshotDump struct {
	enc   *yaml.Encoder
	close func() error
}

// openDump opens path for snapshots; "-" writes to stdout.
func openDump(path string) (*snapshotDump, error) {
	if path == "-" {
		return newSnapshotDump(os.Stdout, func() error { return nil }), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating dump file: %w", err)
	}
	return newSnapshotDump(f, f.Close), nil
}

func newSnapshotDump(w io.Writer, closeFn func() error) *snapshotDump {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &snapshotDump{enc: enc, close: closeFn}
}

// Write appends one snapshot document.
func (d *snapshotDump) Write(s pong.Snapshot) error {
	return d.enc.Encode(s)
}

// Close flushes the encoder and closes the destination.
func (d *snapshotDump) Close() error {
	err := d.enc.Close()
	if cerr := d.close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("closing dump: %w", err)
	}
	return nil
}
