package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective configuration",
	Long: `Print the configuration a variant would run with, after applying
--config and --difficulty, as YAML. Use it as a starting point for a
custom config file.

Config files are searched in this order:
  --config <path>
  ~/.arcade/configs/<variant>.yaml
  ./configs/<variant>.yaml
  built-in defaults

Examples:
  pong config > my-pong.yaml
  pong config pong-classic --difficulty hard
  pong config --defaults`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
}

func runConfig(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}

	if flagConfigDefaults {
		fmt.Print(string(config.GetDefaultYAML(variant)))
		return nil
	}

	game, err := loadGame(variant)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(game.Config())
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
