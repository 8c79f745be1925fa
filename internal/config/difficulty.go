package config

// LevelMax is the difficulty level at which gravity reaches its maximum.
// Levels are integers so that gravity stays exact across replays.
const LevelMax = 1000

// DifficultyManager calculates gravity from match progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	gravity      GravityConfig
	initialLevel int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, gravity GravityConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		gravity:      gravity,
		initialLevel: clampLevel(cfg.InitialLevel),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level based on lines cleared or
// frames played.
func (d *DifficultyManager) Level(lines, frames int) int {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress int
	switch d.cfg.Progression.Type {
	case "lines":
		progress = lines
	case "frames":
		progress = frames
	default:
		return d.initialLevel
	}
	if progress > maxAt {
		progress = maxAt
	}
	if progress < 0 {
		progress = 0
	}

	// Interpolate from the initial level to LevelMax.
	return d.initialLevel + progress*(LevelMax-d.initialLevel)/maxAt
}

// Gravity returns the gravity in sub-cell units per tick for the given
// progress.
func (d *DifficultyManager) Gravity(lines, frames int) int {
	level := d.Level(lines, frames)
	return d.gravity.Base + (d.gravity.Max-d.gravity.Base)*level/LevelMax
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > LevelMax {
		return LevelMax
	}
	return level
}
