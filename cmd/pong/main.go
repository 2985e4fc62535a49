// pong is a terminal Pong game: you on the left, a CPU paddle on the right.
//
// Usage:
//
//	pong list               - List available variants
//	pong play [variant]     - Play a variant (default: pong)
//	pong menu               - Pick variants interactively
//	pong scores [variant]   - Show match history
//	pong serve              - Start SSH server for remote play
//	pong sim [variant]      - Run a headless, seeded simulation
//	pong config [variant]   - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/pong.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - beat the CPU in your terminal",
	Long: `Pong is a single-player take on the classic: move the left paddle with
the mouse, a drag, the wheel or the arrow keys, and outlast the CPU paddle
on the right. First to 12 wins; the classic variant never ends.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View match history
  serve    - Start SSH server for remote play
  sim      - Headless simulation for testing and tuning
  config   - Print the effective configuration

Examples:
  pong play
  pong play pong-classic --difficulty hard
  pong serve --ssh :2222
  pong sim --frames 10000 --seed 42 --autoplay`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/pong.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup configures logging and hands the config flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("invalid --difficulty %q: want easy, normal, hard or fixed", flagDifficulty)
	}

	pong.SetConfigPath(flagConfig)
	pong.SetDifficultyPreset(flagDifficulty)
	return nil
}
