// runes is a lane-defense game played by drawing runes with the mouse.
//
// Usage:
//
//	runes play [level]        - Pick a stage from the menu, or start one directly
//	runes simulate            - Play a stage headless with a computer player
//	runes recognize <file>    - Classify a stroke read from a YAML file
//	runes levels              - List stages, or generate waves for one
//	runes gestures            - List the rune templates
//	runes scores [stage]      - Show high scores
//	runes serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.runes/scores.db)
//	--config <path>       - Game configuration YAML
//	--levels <path>       - Stage definitions YAML
//	--difficulty <preset> - Endless difficulty: easy, normal, hard, fixed
//	--avatar <name>       - Hero to play
//	--verbose             - Log debug output to stderr
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/core"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagAvatar     string
	flagVerbose    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runes",
	Short: "Runes - defend the line by drawing spells",
	Long: `Runes is a lane-defense game for the terminal. Enemies march down three
lanes towards your line; draw the rune shown above an enemy with the mouse
to strike it. Mana dropped by fallen enemies powers spells.

Available commands:
  play      - Play a stage
  simulate  - Run a stage headless with a computer player
  recognize - Classify a stroke from a file
  levels    - List or generate stages
  gestures  - List the rune templates
  scores    - View high scores
  serve     - Start SSH server for remote play

Examples:
  runes play
  runes play 3 --avatar holyKnight
  runes play endless --difficulty hard
  runes simulate --level 2 --skill 0.9
  runes serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runes/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to levels YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Endless difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagAvatar, "avatar", "", "Hero to play")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(gesturesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadBundle reads the configuration and stages named by the global flags.
func loadBundle(ctx context.Context) (config.Bundle, error) {
	b, err := config.LoadAll(ctx, config.Paths{Config: flagConfig, Levels: flagLevels})
	if err != nil {
		return config.Bundle{}, err
	}
	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		switch preset {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
			config.ApplyPreset(&b.Game, preset)
		default:
			return config.Bundle{}, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
	}
	if flagAvatar != "" {
		if _, ok := b.Game.AvatarByName(flagAvatar); !ok {
			return config.Bundle{}, fmt.Errorf("unknown avatar %q", flagAvatar)
		}
		b.Game.Avatar = flagAvatar
	}
	return b, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newLogger logs to stderr when verbose, and nowhere otherwise. Full-screen
// commands must not write to the terminal they draw on.
func newLogger(prefix string, fullScreen bool) *log.Logger {
	if !flagVerbose || fullScreen {
		return log.New(io.Discard)
	}
	l := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: prefix})
	l.SetLevel(log.DebugLevel)
	return l
}
