package tetrion

import "testing"

func TestRandomizerCycleCounts(t *testing.T) {
	const tokens = 6
	r := NewRandomizer(12345, tokens)

	for cycle := 0; cycle < 5; cycle++ {
		counts := make(map[Cell]int)
		for i := 0; i < tokens*pieceCount; i++ {
			counts[r.Next()]++
			for j, n := range r.Tokens() {
				if n < 0 {
					t.Fatalf("cycle %d draw %d: token %d went negative", cycle, i, j)
				}
			}
		}
		for _, c := range Pieces {
			if counts[c] != tokens {
				t.Errorf("cycle %d: %v drawn %d times, expected %d", cycle, c, counts[c], tokens)
			}
		}
		for j, n := range r.Tokens() {
			if n != 0 {
				t.Errorf("cycle %d: token %d = %d after a full cycle, expected 0", cycle, j, n)
			}
		}
	}

	if got := r.Drawn(); got != uint64(5*tokens*pieceCount) {
		t.Errorf("Drawn() = %d, expected %d", got, 5*tokens*pieceCount)
	}
}

func TestRandomizerWindowsHoldEveryType(t *testing.T) {
	const (
		tokens = 6
		cycle  = tokens * pieceCount
		window = cycle - tokens + 1
	)

	for _, seed := range []int64{1, 42, 999, -7} {
		r := NewRandomizer(seed, tokens)
		draws := make([]Cell, cycle)
		for i := range draws {
			draws[i] = r.Next()
		}

		for start := 0; start+window <= cycle; start++ {
			seen := make(map[Cell]bool)
			for _, c := range draws[start : start+window] {
				seen[c] = true
			}
			if len(seen) != pieceCount {
				t.Errorf("seed %d: window at %d holds %d types, expected %d", seed, start, len(seen), pieceCount)
			}
		}
	}
}

func TestRandomizerDeterminism(t *testing.T) {
	a := NewRandomizer(777, 6)
	b := NewRandomizer(777, 6)
	c := NewRandomizer(778, 6)

	diverged := false
	for i := 0; i < 200; i++ {
		x, y, z := a.Next(), b.Next(), c.Next()
		if x != y {
			t.Fatalf("draw %d: same seed produced %v and %v", i, x, y)
		}
		if x != z {
			diverged = true
		}
	}
	if !diverged {
		t.Error("different seeds produced identical sequences")
	}
	if a.State() != b.State() {
		t.Errorf("State() mismatch: %d vs %d", a.State(), b.State())
	}
}

func TestRandomizerOnlyDrawsPieces(t *testing.T) {
	r := NewRandomizer(3, 1)
	for i := 0; i < 70; i++ {
		if c := r.Next(); !c.IsPiece() {
			t.Fatalf("draw %d returned %v", i, c)
		}
	}
}

func TestNewRandomizerPanicsWithoutTokens(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRandomizer with 0 tokens should panic")
		}
	}()
	NewRandomizer(1, 0)
}

func TestRNGSeedZero(t *testing.T) {
	a := NewRNG(0)
	b := NewRNG(1)
	if a.Next() != b.Next() {
		t.Error("seed 0 should behave like seed 1")
	}
}

func TestRNGIntnRange(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(7); v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d", v)
		}
	}
	if v := r.Intn(0); v != 0 {
		t.Errorf("Intn(0) = %d, expected 0", v)
	}
}
