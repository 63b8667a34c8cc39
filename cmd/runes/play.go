package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runes/internal/config"
	"github.com/vovakirdan/runes/internal/levels"
	"github.com/vovakirdan/runes/internal/platform/tui"
	"github.com/vovakirdan/runes/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level|endless]",
	Short: "Play a stage",
	Long: `Start the stage picker, or jump straight into a stage.

Draw runes by dragging the left mouse button over the arena. Tap a mana
drop to collect it; tap elsewhere to cast the selected spell.

Controls:
  Mouse drag  - Draw a rune
  1/2/3       - Select spell slot
  N           - Call the next wave early
  P           - Pause
  R           - Restart
  Ctrl+S      - Save a screenshot
  Esc/B       - Back to menu
  Q/Ctrl+C    - Quit

Difficulty options (endless stage):
  easy   - Start at lowest difficulty, slower spawns
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, tougher waves
  fixed  - No progression

Examples:
  runes play
  runes play 2
  runes play endless --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger := newLogger("runes", true)
	cfg := runtimeConfig()

	if len(args) == 1 {
		lvl, err := parseStage(bundle.Levels, args[0])
		if err != nil {
			return err
		}
		_, err = tui.RunPlay(tui.PlayOptions{
			Game:    bundle.Game,
			Level:   lvl,
			Store:   store,
			Runtime: cfg,
			Logger:  logger,
		})
		return err
	}

	stages := tui.StagesOf(bundle.Levels)
	for {
		res, err := tui.RunMenu(bundle.Levels, bundle.Game, store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config
		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, stages, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game := bundle.Game
		if res.Avatar != "" {
			game.Avatar = res.Avatar
		}
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		back, err := tui.RunPlay(tui.PlayOptions{
			Game:    game,
			Level:   res.Level,
			Store:   store,
			Runtime: cfg,
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// parseStage resolves a level number or "endless".
func parseStage(set *levels.Set, arg string) (levels.Level, error) {
	if strings.EqualFold(arg, "endless") {
		return levels.Level{Number: levels.EndlessNumber}, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return levels.Level{}, fmt.Errorf("invalid level %q (want a number or \"endless\")", arg)
	}
	if n == levels.EndlessNumber {
		return levels.Level{Number: levels.EndlessNumber}, nil
	}
	lvl, err := set.Get(n)
	if err != nil {
		return levels.Level{}, fmt.Errorf("%w: %d (run 'runes levels' to list them)", err, n)
	}
	return lvl, nil
}

// stageTitle names a stage for printed output.
func stageTitle(lvl levels.Level, game config.GameConfig) string {
	if lvl.Endless() {
		return fmt.Sprintf("Endless (target difficulty %d)", game.Endless.TargetDifficulty)
	}
	return fmt.Sprintf("Level %d - %s", lvl.Number, lvl.Name)
}
