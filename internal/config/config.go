// Package config provides YAML-based rule configuration loading and
// gravity progression for the Tetrion playfield.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Simulation variants. They share every rule and differ only in tick rate.
const (
	VariantMRS  = "mrs"
	VariantPure = "pure"
)

// Tick rates of the two variants, in ticks per second.
const (
	TickRateMRS  = 60.0
	TickRatePure = 59.84
)

// MaxFieldHeight is the tallest field the line-clear bitmask can describe.
const MaxFieldHeight = 64

// TetrionConfig contains every tunable constant of a match.
type TetrionConfig struct {
	Variant    string           `yaml:"variant"`
	TickRate   float64          `yaml:"tick_rate"`
	Field      FieldConfig      `yaml:"field"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Timing     TimingConfig     `yaml:"timing"`
	Randomizer RandomizerConfig `yaml:"randomizer"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Input      InputConfig      `yaml:"input"`
}

// FieldConfig defines the playfield size in cells.
type FieldConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	VisibleHeight int `yaml:"visible_height"` // rows drawn; the rest is spawn buffer
}

// SpawnConfig defines where new pieces appear. Row 0 is the bottom.
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// TimingConfig holds the per-piece timers, all in ticks.
type TimingConfig struct {
	ReadyTicks      int `yaml:"ready_ticks"`
	AutoshiftCharge int `yaml:"autoshift_charge"`
	AutoshiftRepeat int `yaml:"autoshift_repeat"`
	LockDelay       int `yaml:"lock_delay"`
	ClearOffset     int `yaml:"clear_offset"` // lock -> line clear
	ClearDelay      int `yaml:"clear_delay"`  // line clear -> thump
	SpawnDelay      int `yaml:"spawn_delay"`  // lock or thump -> next piece
}

// RandomizerConfig configures the token bag.
type RandomizerConfig struct {
	StartingTokens int `yaml:"starting_tokens"`
}

// GravityConfig defines falling speed in sub-cell units per tick.
type GravityConfig struct {
	SubGrid int `yaml:"sub_grid"` // sub-cell units per cell
	Base    int `yaml:"base"`     // gravity at difficulty level 0
	Max     int `yaml:"max"`      // gravity at full difficulty
}

// InputConfig configures the input transport.
type InputConfig struct {
	QueueCapacity int `yaml:"queue_capacity"`
}

// DifficultyConfig defines how gravity progresses during a match.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel int               `yaml:"initial_level"` // permille, 0 = base gravity, 1000 = max gravity
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "frames", or "none"
	MaxAt int    `yaml:"max_at"` // lines/frames at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the starting level (permille) for a preset.
func InitialLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 0
	case DifficultyNormal:
		return 300
	case DifficultyHard:
		return 700
	default:
		return 0
	}
}

// ParsePreset validates a preset name. An empty name is accepted and
// means "keep the configured difficulty".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (easy, normal, hard, fixed)", ErrInvalid, name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TetrionConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyVariant sets the tick rate for a named variant.
func ApplyVariant(cfg *TetrionConfig, variant string) error {
	switch variant {
	case "":
		return nil
	case VariantMRS:
		cfg.TickRate = TickRateMRS
	case VariantPure:
		cfg.TickRate = TickRatePure
	default:
		return fmt.Errorf("%w: unknown variant %q (mrs, pure)", ErrInvalid, variant)
	}
	cfg.Variant = variant
	return nil
}

// Validate checks that every constant is usable by the simulation.
func (c TetrionConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.TickRate > 0, fmt.Sprintf("tick_rate %v must be positive", c.TickRate)},
		{c.Field.Width >= 4 && c.Field.Width <= 64, fmt.Sprintf("field width %d out of range [4, 64]", c.Field.Width)},
		{c.Field.Height >= 4 && c.Field.Height <= MaxFieldHeight, fmt.Sprintf("field height %d out of range [4, %d]", c.Field.Height, MaxFieldHeight)},
		{c.Field.VisibleHeight > 0 && c.Field.VisibleHeight <= c.Field.Height, fmt.Sprintf("visible height %d out of range [1, %d]", c.Field.VisibleHeight, c.Field.Height)},
		{c.Spawn.X >= 0 && c.Spawn.X+4 <= c.Field.Width, fmt.Sprintf("spawn x %d leaves the field", c.Spawn.X)},
		{c.Spawn.Y >= 0 && c.Spawn.Y+4 <= c.Field.Height, fmt.Sprintf("spawn y %d leaves the field", c.Spawn.Y)},
		{c.Timing.ReadyTicks >= 0, "ready_ticks must not be negative"},
		{c.Timing.AutoshiftCharge >= 1, "autoshift_charge must be at least 1"},
		{c.Timing.AutoshiftRepeat >= 1, "autoshift_repeat must be at least 1"},
		{c.Timing.LockDelay >= 1, "lock_delay must be at least 1"},
		{c.Timing.ClearOffset >= 1, "clear_offset must be at least 1"},
		{c.Timing.ClearDelay >= 1, "clear_delay must be at least 1"},
		{c.Timing.SpawnDelay >= 1, "spawn_delay must be at least 1"},
		{c.Randomizer.StartingTokens >= 1, "starting_tokens must be at least 1"},
		{c.Gravity.SubGrid >= 1, "sub_grid must be at least 1"},
		{c.Gravity.Base >= 0 && c.Gravity.Max >= c.Gravity.Base, fmt.Sprintf("gravity range [%d, %d] is invalid", c.Gravity.Base, c.Gravity.Max)},
		{c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= LevelMax, fmt.Sprintf("initial_level %d out of range [0, %d]", c.Difficulty.InitialLevel, LevelMax)},
		{c.Input.QueueCapacity >= 1, "queue_capacity must be at least 1"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, check.msg)
		}
	}
	return nil
}
