package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/runes/internal/levels"
)

var (
	flagGenTarget   int
	flagGenInterval float64
	flagGenNumber   int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the stages",
	Long: `Shows every stage with its waves and spawn interval.

Examples:
  runes levels
  runes levels --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate waves with the endless generator",
	Long: `Build a stage whose total enemy difficulty approaches --target, drawing
from the endless roster. The result is printed as a levels file, ready to
append to a custom --levels file.

Examples:
  runes levels generate --target 20
  runes levels generate --target 40 --number 9 --seed 7 > extra.yaml`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenTarget, "target", 0, "Total difficulty (default: endless target)")
	generateCmd.Flags().Float64Var(&flagGenInterval, "interval", 0, "Spawn interval in seconds (default: endless interval)")
	generateCmd.Flags().IntVar(&flagGenNumber, "number", 99, "Level number of the generated stage")
	levelsCmd.AddCommand(generateCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}

	list := bundle.Levels.Levels()
	if len(list) == 0 {
		fmt.Println("No levels defined.")
		return nil
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-20s  %-8s  %s\n", "#", "Name", "Interval", "Waves")
	fmt.Printf("  %-3s  %-20s  %-8s  %s\n", "-", "----", "--------", "-----")
	for _, l := range list {
		waves := make([]string, len(l.Waves))
		for i, w := range l.Waves {
			waves[i] = strings.Join(w, ",")
		}
		fmt.Printf("  %-3d  %-20s  %-8s  %s\n", l.Number, l.Name, fmt.Sprintf("%.1fs", l.SpawnInterval), strings.Join(waves, " | "))
	}

	fmt.Println()
	fmt.Println("Run 'runes play <number>' to play a level, or 'runes play endless'.")
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}
	game := bundle.Game

	target := flagGenTarget
	if target <= 0 {
		target = game.Endless.TargetDifficulty
	}
	interval := flagGenInterval
	if interval <= 0 {
		interval = game.Endless.SpawnInterval
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	waves, err := levels.Generate(target, game.EndlessRoster(), game.Arena.Lanes, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	lvl := levels.Level{
		Number:        flagGenNumber,
		Name:          fmt.Sprintf("Generated %d", target),
		SpawnInterval: interval,
		Waves:         waves,
	}
	if err := lvl.Validate(game.Arena.Lanes, func(name string) bool {
		_, ok := game.EnemyByName(name)
		return ok
	}); err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(map[string][]levels.Level{"levels": {lvl}})
}
