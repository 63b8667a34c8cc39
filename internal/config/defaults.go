package config

import (
	_ "embed"

	"github.com/vovakirdan/runes/internal/gesture"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}

// DefaultGameConfig returns the hardcoded default configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Arena: ArenaConfig{
			Width:          600,
			Height:         1000,
			Lanes:          3,
			SpawnOffset:    0.05,
			EndPointY:      60,
			EndPointHeight: 40,
			EnemyWidth:     60,
			EnemyHeight:    60,
			MarkerOffset:   50,
		},
		Recognizer: RecognizerConfig{
			Params: gesture.DefaultParams(),
			Circle: gesture.DefaultCircleParams(),
		},
		Gestures: gesture.DefaultDefinitions(),
		Enemies: []EnemyConfig{
			{
				Name: "orc1", Health: 1, Speed: 40, Acceleration: 200, Difficulty: 1, Score: 10,
				Gestures: []gesture.ID{gesture.HorizontalLine, gesture.VerticalLine, gesture.HorizontalLine2, gesture.VerticalLine2},
			},
			{
				Name: "orc2", Health: 2, Speed: 45, Acceleration: 200, Difficulty: 2, Score: 20,
				Gestures: []gesture.ID{gesture.ArrowUp, gesture.ArrowDown, gesture.ArrowLeft, gesture.ArrowRight},
			},
			{
				Name: "troll1", Health: 3, Speed: 30, Acceleration: 150, Difficulty: 3, Score: 40,
				Gestures: []gesture.ID{gesture.ZShape, gesture.Lightning, gesture.CapitalTShape, gesture.UShape},
			},
			{
				Name: "evilKnight", Health: 2, Speed: 55, Acceleration: 250, Difficulty: 4, Score: 50,
				Gestures:         []gesture.ID{gesture.Diamond, gesture.Ribbon, gesture.WShape, gesture.MShape, gesture.PShape},
				DisablesPowerUps: []string{"icePrison"},
			},
		},
		Avatar: "elementalWizard",
		Avatars: []AvatarConfig{
			{Name: "elementalWizard", Title: "Elemental Wizard", Health: 3, ManaUnits: 8,
				PowerUps: []string{"darkVortex", "hellfire", "icePrison"}},
			{Name: "holyKnight", Title: "Holy Knight", Health: 5, ManaUnits: 5,
				PowerUps: []string{"divineBlessing", "divineShield", "heroicCall"}},
		},
		PowerUps: []PowerUpConfig{
			{Kind: "darkVortex", ManaUnits: 4, Duration: 5, Radius: 80},
			{Kind: "hellfire", ManaUnits: 5, Radius: 150, Amount: 1},
			{Kind: "icePrison", ManaUnits: 3, Duration: 4, Radius: 150},
			{Kind: "divineShield", ManaUnits: 3, Duration: 6},
			{Kind: "divineBlessing", ManaUnits: 2, Amount: 1},
			{Kind: "heroicCall", ManaUnits: 4},
		},
		Mana: ManaConfig{
			PerUnit:      10,
			StartUnits:   2,
			Regenerates:  true,
			DropMin:      3,
			DropMax:      8,
			DropLifetime: 5,
			RareChance:   0.15,
			EpicChance:   0.05,
			DropSize:     40,
		},
		Combat: CombatConfig{
			HitDamage:  1,
			LineDamage: 1,
			ComboStep:  0.1,
			ComboMax:   3.0,
			Separation: 1.5,
		},
		Units: UnitConfig{
			Speed:        60,
			Acceleration: 300,
			Width:        50,
			Height:       50,
		},
		Endless: EndlessConfig{
			TargetDifficulty: 12,
			LowWater:         2,
			SpawnInterval:    2.5,
			Roster:           []string{"orc1", "orc2", "troll1", "evilKnight"},
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "score",
					MaxAt: 2000,
				},
				Scaling: ScalingConfig{
					SpeedMultiplier:      0.8,
					DifficultyMultiplier: 1.5,
					IntervalReduction:    0.5,
				},
			},
		},
	}
}
