package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/runes/internal/sim"
)

var (
	flagSimLevel    string
	flagSimSeconds  float64
	flagSimSkill    float64
	flagSimReaction float64
	flagSimNoSpells bool
	flagSimMirror   int
	flagSimProfile  string
	flagSimProfDir  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a stage headless with a computer player",
	Long: `Run a stage without a terminal UI. A computer player draws the rune of
the enemy closest to the line, missing now and then according to its skill.

With --mirror every n-th frame is exported as a delta and applied to a
second field, checking that remote play keeps both sides in step.

Examples:
  runes simulate --level 1
  runes simulate --level endless --seconds 120 --skill 0.7
  runes simulate --level 3 --mirror 5
  runes simulate --level 5 --profile cpu`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimLevel, "level", "1", "Level number or \"endless\"")
	simulateCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 600, "Simulated time limit")
	simulateCmd.Flags().Float64Var(&flagSimSkill, "skill", sim.DefaultSkill, "Chance each rune is drawn correctly (0-1)")
	simulateCmd.Flags().Float64Var(&flagSimReaction, "reaction", sim.DefaultReaction, "Seconds between strokes")
	simulateCmd.Flags().BoolVar(&flagSimNoSpells, "no-spells", false, "Never cast power-ups")
	simulateCmd.Flags().IntVar(&flagSimMirror, "mirror", 0, "Mirror the field every n frames (0 = off)")
	simulateCmd.Flags().StringVar(&flagSimProfile, "profile", "", "Write a cpu or mem profile")
	simulateCmd.Flags().StringVar(&flagSimProfDir, "profile-dir", ".", "Directory for profiles")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagSimSkill < 0 || flagSimSkill > 1 {
		return fmt.Errorf("--skill must be between 0 and 1, got %v", flagSimSkill)
	}
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}
	lvl, err := parseStage(bundle.Levels, flagSimLevel)
	if err != nil {
		return err
	}

	switch flagSimProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(flagSimProfDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(flagSimProfDir), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q (want cpu or mem)", flagSimProfile)
	}

	pilot := sim.NewPilot(flagSeed)
	pilot.Skill = flagSimSkill
	pilot.Reaction = flagSimReaction
	pilot.PowerUps = !flagSimNoSpells

	rep, err := sim.Run(cmd.Context(), sim.Options{
		Game:        bundle.Game,
		Level:       lvl,
		Seed:        flagSeed,
		FrameRate:   flagFPS,
		MaxSeconds:  flagSimSeconds,
		Pilot:       pilot,
		MirrorEvery: flagSimMirror,
		Logger:      newLogger("sim", false),
	})
	if err != nil {
		return err
	}

	outcome := "time limit"
	switch {
	case rep.Over && rep.Won:
		outcome = "victory"
	case rep.Over:
		outcome = "defeat"
	}
	fmt.Printf("Stage:    %s\n", stageTitle(lvl, bundle.Game))
	fmt.Printf("Outcome:  %s after %.1fs (%d frames)\n", outcome, rep.Elapsed, rep.Frames)
	fmt.Printf("Score:    %d\n", rep.Score)
	fmt.Printf("Kills:    %d\n", rep.Kills)
	fmt.Printf("Health:   %d\n", rep.Health)
	fmt.Printf("Strokes:  %d (%d missed)\n", rep.Strokes, rep.Misses)
	fmt.Printf("Snapshot: %016x\n", rep.Snapshot)
	if flagSimMirror > 0 {
		fmt.Println()
		fmt.Printf("Mirror:   %d deltas, %d faults\n", rep.Deltas, rep.ReplicaFaults)
		fmt.Printf("Enemies:  field %d, replica %d\n", rep.FieldAlive, rep.ReplicaAlive)
		fmt.Printf("Score:    field %d, replica %d\n", rep.Score, rep.ReplicaScore)
	}
	return nil
}
