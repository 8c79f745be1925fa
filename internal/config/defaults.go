package config

import (
	_ "embed"
)

//go:embed defaults/tetrion.yaml
var defaultTetrionYAML []byte

// DefaultTetrionConfig returns the built-in rule constants.
// It mirrors defaults/tetrion.yaml and is used when the embedded file
// cannot be parsed.
func DefaultTetrionConfig() TetrionConfig {
	return TetrionConfig{
		Variant:  VariantMRS,
		TickRate: TickRateMRS,
		Field: FieldConfig{
			Width:         10,
			Height:        22,
			VisibleHeight: 20,
		},
		Spawn: SpawnConfig{
			X: 3,
			Y: 18,
		},
		Timing: TimingConfig{
			ReadyTicks:      180,
			AutoshiftCharge: 12,
			AutoshiftRepeat: 1,
			LockDelay:       40,
			ClearOffset:     5,
			ClearDelay:      30,
			SpawnDelay:      24,
		},
		Randomizer: RandomizerConfig{
			StartingTokens: 6,
		},
		Gravity: GravityConfig{
			SubGrid: 256,
			Base:    4,
			Max:     5120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 200,
			},
		},
		Input: InputConfig{
			QueueCapacity: 64,
		},
	}
}
