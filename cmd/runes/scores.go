package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/storage"
)

var flagScoresClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level|endless]",
	Short: "Show high scores",
	Long: `Without a stage, summarise every stage that has been played.
With one, display its top 10 results.

Examples:
  runes scores
  runes scores 2
  runes scores endless
  runes scores 2 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stage's results")
}

func runScores(cmd *cobra.Command, args []string) error {
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a stage")
		}
		return printSummary(store, bundle.Levels.Levels())
	}

	lvl, err := parseStage(bundle.Levels, args[0])
	if err != nil {
		return err
	}
	stageID := lvl.StageID()

	if flagScoresClear {
		if err := store.ClearScores(stageID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", stageTitle(lvl, bundle.Game))
		return nil
	}

	results, err := store.TopScores(stageID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", stageTitle(lvl, bundle.Game))
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runes play %s' to set the first high score!\n", args[0])
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-16s  %-5s  %-6s  %s\n", "Rank", "Score", "Result", "Hero", "Kills", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-16s  %-5s  %-6s  %s\n", "----", "-----", "------", "----", "-----", "----", "----")
	for i, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Printf("  %-4d  %-8d  %-7s  %-16s  %-5d  %-6s  %s\n",
			i+1, r.Score, outcome, r.Avatar, r.Kills, fmt.Sprintf("%d:%02d", r.Duration/60, r.Duration%60),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.Stats(stageID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Played %d, won %d, best %d, average %.0f\n", st.Played, st.Wins, st.HighScore, st.AvgScore)
	}
	return nil
}

func printSummary(store *storage.Store, stages []levels.Level) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Println("Stages played:")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-4s  %-8s  %s\n", "Stage", "Played", "Won", "Best", "Last played")
	fmt.Printf("  %-10s  %-6s  %-4s  %-8s  %s\n", "-----", "------", "---", "----", "-----------")
	ids := make([]string, 0, len(stages)+1)
	for _, l := range stages {
		ids = append(ids, l.StageID())
	}
	ids = append(ids, "endless")
	for _, id := range ids {
		st, ok := all[id]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s  %-6d  %-4d  %-8d  %s\n", id, st.Played, st.Wins, st.HighScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
