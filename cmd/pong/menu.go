package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant and Tab to
see the match history. Leaving a game with Esc returns to the menu.

Examples:
  pong menu
  pong menu --fps 30
  pong menu --db ./pong.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := loadGame(menuResult.GameID)
		if err != nil {
			log.Error("cannot start game", "variant", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
