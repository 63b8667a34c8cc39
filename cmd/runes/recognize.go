package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/runes/internal/core"
	"github.com/vovakirdan/runes/internal/gesture"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <file|->",
	Short: "Classify a stroke read from a YAML file",
	Long: `Run the rune recognizer over a recorded stroke. The file lists the
stroke's points in arena units, y growing upwards:

  points:
    - {x: 100, y: 500}
    - {x: 140, y: 500}
    - {x: 180, y: 500}

Use "-" to read from stdin.

Examples:
  runes recognize stroke.yaml
  cat stroke.yaml | runes recognize -`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

// strokeFile is the YAML layout of a recorded stroke.
type strokeFile struct {
	Points []core.Vec2 `yaml:"points"`
}

func runRecognize(cmd *cobra.Command, args []string) error {
	points, err := readStroke(args[0])
	if err != nil {
		return err
	}
	bundle, err := loadBundle(cmd.Context())
	if err != nil {
		return err
	}
	templates, err := bundle.Game.Templates()
	if err != nil {
		return err
	}
	matcher, err := gesture.NewMatcher(bundle.Game.Recognizer.Params, templates)
	if err != nil {
		return err
	}
	rec := gesture.NewRecognizer(matcher, bundle.Game.Recognizer.Circle)

	res := rec.Recognize(points)
	fmt.Printf("Points:     %d\n", len(points))
	fmt.Printf("Directions: %v\n", res.Path.Directions)
	fmt.Printf("Result:     %s\n", res.Kind)
	switch res.Kind {
	case gesture.ResultGesture:
		fmt.Printf("Rune:       %s (cost %d)\n", res.Match.ID, res.Match.Cost)
	case gesture.ResultCircle:
		fmt.Printf("Circle:     center (%.1f, %.1f), radius %.1f\n", res.Circle.Center.X, res.Circle.Center.Y, res.Circle.Radius)
	}
	return nil
}

func readStroke(path string) ([]core.Vec2, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read stroke: %w", err)
	}
	var f strokeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse stroke %s: %w", path, err)
	}
	if len(f.Points) == 0 {
		return nil, fmt.Errorf("stroke %s has no points", path)
	}
	return f.Points, nil
}
