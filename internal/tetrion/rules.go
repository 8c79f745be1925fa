package tetrion

import (
	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
)

// rules is the flattened, read-only view of a TetrionConfig used on the
// hot path. It is built once per match.
type rules struct {
	width           int
	height          int
	visibleHeight   int
	spawn           core.Point
	subGrid         int
	autoshiftCharge int
	autoshiftRepeat int
	lockDelay       int
	clearOffset     int
	clearDelay      int
	spawnDelay      int
	readyTicks      int
	startingTokens  int
}

func newRules(cfg config.TetrionConfig) rules {
	return rules{
		width:           cfg.Field.Width,
		height:          cfg.Field.Height,
		visibleHeight:   cfg.Field.VisibleHeight,
		spawn:           core.Point{X: cfg.Spawn.X, Y: cfg.Spawn.Y},
		subGrid:         cfg.Gravity.SubGrid,
		autoshiftCharge: cfg.Timing.AutoshiftCharge,
		autoshiftRepeat: cfg.Timing.AutoshiftRepeat,
		lockDelay:       cfg.Timing.LockDelay,
		clearOffset:     cfg.Timing.ClearOffset,
		clearDelay:      cfg.Timing.ClearDelay,
		spawnDelay:      cfg.Timing.SpawnDelay,
		readyTicks:      cfg.Timing.ReadyTicks,
		startingTokens:  cfg.Randomizer.StartingTokens,
	}
}
