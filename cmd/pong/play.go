package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: pong).

Controls:
  Mouse      - Paddle follows the pointer
  Drag/Wheel - Move the paddle relative to where it is
  Up/Down    - Nudge the paddle (also W/S)
  P/Space    - Pause
  R          - Restart (after game over)
  Esc        - Pause, then leave
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - CPU starts at level 0.0 and speeds up as you score
  normal - CPU starts at level 0.3 and speeds up as you score
  hard   - CPU starts at level 0.7 and speeds up as you score
  fixed  - No progression, stays at config's initial level

Examples:
  pong play
  pong play pong-classic
  pong play --difficulty hard
  pong play --config ./my-pong.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// variantArg returns the requested variant, defaulting to pong.
func variantArg(args []string) (string, error) {
	variant := config.VariantPong
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return "", fmt.Errorf("unknown variant %q, run 'pong list' to see available variants", variant)
	}
	return variant, nil
}

// loadGame loads, adjusts and validates the variant config and creates
// the game with it. Unlike the registry path, a broken config is an error.
func loadGame(variant string) (*pong.Game, error) {
	cfg, err := config.LoadPong(variant, flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyPongPreset(&cfg, config.ParsePreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("config loaded", "variant", variant, "path", flagConfig,
		"responsive", cfg.Field.Responsive, "win_score", cfg.Gameplay.WinScore)
	return pong.NewWithConfig(variant, cfg), nil
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the match database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open match database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}

	game, err := loadGame(variant)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
