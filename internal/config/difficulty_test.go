package config

import "testing"

func TestDifficultyGravityCurve(t *testing.T) {
	gravity := GravityConfig{SubGrid: 256, Base: 4, Max: 5120}
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "lines", MaxAt: 200},
	}, gravity)

	tests := []struct {
		lines    int
		expected int
	}{
		{0, 4},
		{100, 4 + (5120-4)*500/LevelMax},
		{200, 5120},
		{500, 5120}, // clamped
	}

	for _, tc := range tests {
		if got := dm.Gravity(tc.lines, 0); got != tc.expected {
			t.Errorf("Gravity(%d lines) = %d, expected %d", tc.lines, got, tc.expected)
		}
	}
}

func TestDifficultyDisabledStaysAtInitialLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 500,
		Progression:  ProgressionConfig{Type: "lines", MaxAt: 10},
	}, GravityConfig{Base: 0, Max: 1000})

	if dm.IsEnabled() {
		t.Error("IsEnabled() = true for a disabled config")
	}
	if got := dm.Level(1000, 1000); got != 500 {
		t.Errorf("Level() = %d, expected the initial level 500", got)
	}
	if got := dm.Gravity(1000, 0); got != 500 {
		t.Errorf("Gravity() = %d, expected 500", got)
	}
}

func TestDifficultyFrameProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 200,
		Progression:  ProgressionConfig{Type: "frames", MaxAt: 1000},
	}, GravityConfig{Base: 0, Max: 1000})

	if got := dm.Level(0, 0); got != 200 {
		t.Errorf("Level(0) = %d, expected 200", got)
	}
	if got := dm.Level(0, 500); got != 600 {
		t.Errorf("Level(500 frames) = %d, expected 600", got)
	}

	clamped := NewDifficultyManager(DifficultyConfig{InitialLevel: 5000}, GravityConfig{Base: 0, Max: 1000})
	if got := clamped.Level(0, 0); got != LevelMax {
		t.Errorf("initial level should clamp, got %d", got)
	}
}
