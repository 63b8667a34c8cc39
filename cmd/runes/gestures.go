package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runes/internal/gesture"
	"github.com/vovakirdan/runes/internal/platform/tui"
)

var gesturesCmd = &cobra.Command{
	Use:   "gestures",
	Short: "List the rune templates",
	Long: `Shows every rune the recognizer knows: its direction chain, the arrows
drawn above enemies, and which enemies carry it.

Directions count counter-clockwise from "right" in steps of 360/slices
degrees; with 8 slices 0 is right, 2 up, 4 left and 6 down.`,
	Args: cobra.NoArgs,
	RunE: runGestures,
}

func runGestures(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}
	game := bundle.Game
	templates, err := game.Templates()
	if err != nil {
		return err
	}
	glyphs := tui.NewPresenter(templates, game.Recognizer.SliceCount)

	carriers := make(map[gesture.ID][]string)
	for _, e := range game.Enemies {
		for _, g := range e.Gestures {
			carriers[g] = append(carriers[g], e.Name)
		}
	}

	maxID := len("Rune")
	for _, d := range game.Gestures {
		maxID = max(maxID, len(d.ID))
	}

	fmt.Printf("Runes (%d slices, max cost %d):\n", game.Recognizer.SliceCount, game.Recognizer.CostMax)
	fmt.Println()
	fmt.Printf("  %-*s  %-8s  %-18s  %-10s  %s\n", maxID, "Rune", "Glyph", "Directions", "Filter", "Enemies")
	fmt.Printf("  %-*s  %-8s  %-18s  %-10s  %s\n", maxID, "----", "-----", "----------", "------", "-------")
	for _, d := range game.Gestures {
		filter := d.Filter
		if filter == "" {
			filter = "-"
		}
		fmt.Printf("  %-*s  %-8s  %-18s  %-10s  %s\n",
			maxID, d.ID, glyphs.Glyph(d.ID), fmt.Sprint(d.Directions), filter, strings.Join(carriers[d.ID], ", "))
	}
	return nil
}
