package tetrion

// RNG is a deterministic 64-bit linear congruential generator.
// Its whole state is one integer, so snapshots and replays can carry it.
type RNG struct {
	state uint64
}

// NewRNG creates a generator from a seed. Seed 0 is remapped to 1.
func NewRNG(seed int64) RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return RNG{state: s}
}

// Next advances the generator and returns the new state.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n). The high bits are used because the low
// bits of an LCG have short periods.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// State returns the raw generator state.
func (r RNG) State() uint64 {
	return r.state
}

// Randomizer is the token bag that picks piece types.
//
// Every type starts with the same number of tokens. A draw picks a type
// with probability proportional to its remaining tokens and spends one.
// When every type is out of tokens all of them are refilled, so each type
// appears exactly `tokens` times per cycle of 7*tokens draws.
type Randomizer struct {
	rng    RNG
	start  int
	tokens [pieceCount]int
	drawn  uint64
}

// NewRandomizer creates a token bag with an explicit seed.
// It panics if tokens is below 1.
func NewRandomizer(seed int64, tokens int) *Randomizer {
	if tokens < 1 {
		panic("tetrion: randomizer needs at least one token per piece")
	}
	r := &Randomizer{
		rng:   NewRNG(seed),
		start: tokens,
	}
	r.refill()
	return r
}

func (r *Randomizer) refill() {
	for i := range r.tokens {
		r.tokens[i] = r.start
	}
}

// Next draws the next piece type.
func (r *Randomizer) Next() Cell {
	total := 0
	for _, t := range r.tokens {
		total += t
	}
	if total == 0 {
		r.refill()
		total = r.start * pieceCount
	}

	pick := r.rng.Intn(total)
	for i, t := range r.tokens {
		if pick < t {
			r.tokens[i]--
			r.drawn++
			return Pieces[i]
		}
		pick -= t
	}

	// Unreachable: pick < total is always covered by the loop.
	panic("tetrion: token bag out of range")
}

// Tokens returns the remaining tokens per piece, in Pieces order.
func (r *Randomizer) Tokens() [pieceCount]int {
	return r.tokens
}

// Drawn returns how many pieces have been drawn.
func (r *Randomizer) Drawn() uint64 {
	return r.drawn
}

// State returns the generator state, for snapshots.
func (r *Randomizer) State() uint64 {
	return r.rng.State()
}
