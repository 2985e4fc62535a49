package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show match history for a variant",
	Long: `Display the best matches for the specified variant (default: pong),
ranked by point margin, plus overall statistics.

Examples:
  pong scores
  pong scores pong-classic --recent
  pong scores --limit 20
  pong scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent matches instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the match history of the variant")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	wonStyle    = cellStyle.Foreground(lipgloss.Color("10"))
	lostStyle   = cellStyle.Foreground(lipgloss.Color("9"))
)

func runScores(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(variant)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearMatches(variant); err != nil {
			return err
		}
		fmt.Printf("Match history for %s cleared.\n", game.Title())
		return nil
	}

	var matches []storage.MatchResult
	if flagScoresRecent {
		matches, err = store.RecentMatches(variant, flagScoresLimit)
	} else {
		matches, err = store.TopMatches(variant, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Match History - %s\n", game.Title())
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pong play %s' to get on the board!\n", variant)
		return nil
	}

	fmt.Println(matchTable(matches))

	stats, err := store.Stats(variant)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Played %d, won %d (%.0f%%), points %d:%d, best rally %d, top speed %.1f\n",
		stats.Played, stats.Won, stats.WinRate()*100,
		stats.PointsFor, stats.PointsAgainst, stats.BestRally, stats.TopSpeed)
	return nil
}

// matchTable renders matches as a bordered table with colored results.
func matchTable(matches []storage.MatchResult) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "Score", "Result", "Rally", "Top speed", "Date")

	for i, m := range matches {
		t.Row(
			strconv.Itoa(i+1),
			fmt.Sprintf("%d - %d", m.PlayerScore, m.OpponentScore),
			resultLabel(m),
			strconv.Itoa(m.LongestRally),
			fmt.Sprintf("%.1f", m.TopSpeed),
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 2 && matches[row].Decided && matches[row].Won:
			return wonStyle
		case col == 2 && matches[row].Decided:
			return lostStyle
		default:
			return cellStyle
		}
	})

	return t.String()
}

// resultLabel describes how a match ended.
func resultLabel(m storage.MatchResult) string {
	switch {
	case !m.Decided:
		return "Quit"
	case m.Won:
		return "Won"
	default:
		return "Lost"
	}
}
