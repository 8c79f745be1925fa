package tetrion

import (
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/input"
)

// PlayerState is the phase of the current piece.
type PlayerState uint8

const (
	PlayerNone    PlayerState = iota
	PlayerSpawned             // placed this tick, becomes Active on the next
	PlayerActive              // under control, falling
	PlayerClear               // locked, waiting for the line clear and thump
	PlayerSpawn               // waiting for the next piece
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case PlayerSpawned:
		return "Spawned"
	case PlayerActive:
		return "Active"
	case PlayerClear:
		return "Clear"
	case PlayerSpawn:
		return "Spawn"
	default:
		return "None"
	}
}

// Signal reports what happened to the player during a tick.
// The Tetrion applies the grid side effects.
type Signal uint8

const (
	SignalLocked  Signal = 1 << iota // piece written into the grid
	SignalCleared                    // full rows should be emptied now
	SignalThump                      // emptied rows should collapse now
	SignalSpawn                      // the next piece is due
)

// Has reports whether s contains every bit of o.
func (s Signal) Has(o Signal) bool {
	return s&o == o
}

// Player is the piece under control plus every per-piece timer.
// A new Player replaces the old one on each spawn.
type Player struct {
	rules *rules
	state PlayerState

	piece    Cell
	preview  Cell
	rotation Rotation
	pos      core.Point // bottom-left corner of the piece box
	ySub     int        // sub-cell fall progress, in [0, subGrid)
	yLowest  int        // lowest row reached so far
	gravity  int        // gravity applied on the last tick

	autoshiftDirection input.Direction
	autoshiftCharge    int
	autoshiftDelay     int

	lockDelay  int
	clearDelay int
	spawnDelay int
	cleared    bool // rows emptied, thump pending
}

func newPlayer(r *rules, piece, preview Cell) Player {
	return Player{
		rules:    r,
		state:    PlayerSpawned,
		piece:    piece,
		preview:  preview,
		rotation: Spin0,
		pos:      r.spawn,
		yLowest:  r.spawn.Y,
	}
}

// State returns the player phase.
func (p *Player) State() PlayerState {
	return p.state
}

// Piece returns the current piece type.
func (p *Player) Piece() Cell {
	return p.piece
}

// Preview returns the piece that was next in line when this one spawned.
func (p *Player) Preview() Cell {
	return p.preview
}

// Position returns the bottom-left corner of the piece box.
func (p *Player) Position() core.Point {
	return p.pos
}

// Rotation returns the current orientation.
func (p *Player) Rotation() Rotation {
	return p.rotation
}

// LockDelay returns the number of grounded ticks counted so far.
func (p *Player) LockDelay() int {
	return p.lockDelay
}

// Cells returns the absolute grid cells of the piece.
func (p *Player) Cells() [4]core.Point {
	var out [4]core.Point
	for i, c := range ShapeOf(p.piece, p.rotation) {
		out[i] = p.pos.Add(c)
	}
	return out
}

// advance runs one tick of the player FSM.
func (p *Player) advance(g *Grid, in input.Frame, gravity int) Signal {
	switch p.state {
	case PlayerSpawned:
		p.state = PlayerActive
		return p.updateActive(g, in, gravity)

	case PlayerActive:
		return p.updateActive(g, in, gravity)

	case PlayerClear:
		p.clearDelay--
		if p.clearDelay > 0 {
			return 0
		}
		if !p.cleared {
			p.cleared = true
			p.clearDelay = p.rules.clearDelay
			return SignalCleared
		}
		p.state = PlayerSpawn
		p.spawnDelay = p.rules.spawnDelay
		return SignalThump

	case PlayerSpawn:
		p.spawnDelay--
		if p.spawnDelay > 0 {
			return 0
		}
		return SignalSpawn
	}
	return 0
}

func (p *Player) updateActive(g *Grid, in input.Frame, gravity int) Signal {
	adjusted := false

	if in.Pressed(core.ActionButton1) || in.Pressed(core.ActionButton3) {
		adjusted = p.tryRotate(g, p.rotation.CCW()) || adjusted
	}
	if in.Pressed(core.ActionButton2) {
		adjusted = p.tryRotate(g, p.rotation.CW()) || adjusted
	}

	if p.updateShift(g, in) {
		adjusted = true
	}

	switch {
	case in.Held(core.ActionUp):
		gravity = max(gravity, p.rules.subGrid*p.rules.height)
	case in.Held(core.ActionDown) && gravity < p.rules.subGrid:
		gravity = p.rules.subGrid
	}
	p.gravity = gravity
	p.fall(g)

	if !p.grounded(g) {
		return 0
	}
	if in.Held(core.ActionDown) {
		return p.lock(g)
	}
	if !adjusted {
		p.lockDelay++
	}
	if p.lockDelay >= p.rules.lockDelay {
		return p.lock(g)
	}
	return 0
}

// tryRotate turns the piece, trying each kick in order.
func (p *Player) tryRotate(g *Grid, to Rotation) bool {
	for _, k := range kicks {
		pos := p.pos.Add(k)
		if fits(g, p.piece, to, pos) {
			p.rotation = to
			p.pos = pos
			p.lockDelay = 0
			return true
		}
	}
	return false
}

func (p *Player) tryShift(g *Grid, dir input.Direction) bool {
	pos := core.Point{X: p.pos.X + int(dir), Y: p.pos.Y}
	if !fits(g, p.piece, p.rotation, pos) {
		return false
	}
	p.pos = pos
	p.lockDelay = 0
	return true
}

// updateShift moves on the press edge, again once the charge is full,
// then every repeat interval while the direction stays held. A direction
// that was already held when the piece spawned only starts charging.
func (p *Player) updateShift(g *Grid, in input.Frame) bool {
	dir := in.Horizontal()
	if dir == input.DirNone {
		p.autoshiftDirection = input.DirNone
		p.autoshiftCharge = 0
		p.autoshiftDelay = 0
		return false
	}

	if dir != p.autoshiftDirection {
		p.autoshiftDirection = dir
		p.autoshiftCharge = 1
		p.autoshiftDelay = 0
		if !in.Pressed(directionAction(dir)) {
			return false
		}
		return p.tryShift(g, dir)
	}

	if p.autoshiftCharge < p.rules.autoshiftCharge {
		p.autoshiftCharge++
		if p.autoshiftCharge == p.rules.autoshiftCharge {
			return p.tryShift(g, dir)
		}
		return false
	}

	p.autoshiftDelay++
	if p.autoshiftDelay >= p.rules.autoshiftRepeat {
		p.autoshiftDelay = 0
		return p.tryShift(g, dir)
	}
	return false
}

func directionAction(dir input.Direction) core.Action {
	if dir == input.DirLeft {
		return core.ActionLeft
	}
	return core.ActionRight
}

// fall applies gravity. Each whole cell of accumulated gravity moves the
// piece one row down; a blocked row drops the remainder.
func (p *Player) fall(g *Grid) {
	p.ySub += p.gravity
	for p.ySub >= p.rules.subGrid {
		below := core.Point{X: p.pos.X, Y: p.pos.Y + Down}
		if !fits(g, p.piece, p.rotation, below) {
			p.ySub = 0
			return
		}
		p.pos = below
		p.ySub -= p.rules.subGrid
		if p.pos.Y < p.yLowest {
			p.yLowest = p.pos.Y
			p.lockDelay = 0
		}
	}
}

func (p *Player) grounded(g *Grid) bool {
	return !fits(g, p.piece, p.rotation, core.Point{X: p.pos.X, Y: p.pos.Y + Down})
}

// lock writes the piece into the grid and picks the next phase.
func (p *Player) lock(g *Grid) Signal {
	for _, c := range p.Cells() {
		g.Set(c.X, c.Y, p.piece)
	}
	p.ySub = 0
	if g.FullRows() != 0 {
		p.state = PlayerClear
		p.clearDelay = p.rules.clearOffset
	} else {
		p.state = PlayerSpawn
		p.spawnDelay = p.rules.spawnDelay
	}
	return SignalLocked
}
