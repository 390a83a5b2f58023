// Package selector implements the four quote-selection policies of
// spec.md §4.3 as a single tagged-union type with an exhaustive switch, per
// spec.md §9 ("avoid class hierarchies or dynamic dispatch tables — the
// enumeration is closed and exhaustive switching is clearer").
package selector

import (
	"math/rand"
	"time"
)

// Mode names one of the four disjoint selection policies.
type Mode int

const (
	Random Mode = iota
	Sequential
	RandomNoRepeat
	ShuffleCycle
)

// Selector yields the next index into a corpus of a given size, according
// to a fixed Mode. It is exclusively owned and mutated by the supervisor's
// single thread of control; no synchronization is required (spec.md §5).
type Selector struct {
	mode Mode
	size int
	rng  *rand.Rand

	// sequential
	position int

	// random-no-repeat
	exhausted map[int]struct{}

	// shuffle-cycle
	order []int
}

// New creates a Selector for mode, bound to an initial corpus size. The
// PRNG is seeded from the wall clock, per spec.md §4.3 ("any
// cryptographically non-critical PRNG ... seeded ... wall-clock is
// explicitly permitted").
func New(mode Mode, size int) *Selector {
	s := &Selector{
		mode: mode,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.Reset(size)
	return s
}

// Next returns the next index in [0, size), or (0, false) iff size == 0.
// The mode never changes across calls; only Reset changes the bound size.
func (s *Selector) Next() (int, bool) {
	if s.size == 0 {
		return 0, false
	}
	switch s.mode {
	case Sequential:
		return s.nextSequential(), true
	case RandomNoRepeat:
		return s.nextRandomNoRepeat(), true
	case ShuffleCycle:
		return s.nextShuffleCycle(), true
	default: // Random
		return s.rng.Intn(s.size), true
	}
}

// Reset prepares the Selector to serve a corpus of (possibly different)
// size, per the per-mode rules of spec.md §4.3. The mode itself is
// immutable across resets.
func (s *Selector) Reset(size int) {
	s.size = size
	switch s.mode {
	case Sequential:
		s.position = 0
	case RandomNoRepeat:
		s.exhausted = make(map[int]struct{}, size)
	case ShuffleCycle:
		s.order = shuffledPermutation(s.rng, size)
		s.position = 0
	case Random:
		// No visible state beyond the new size.
	}
}

// Mode returns the Selector's fixed policy.
func (s *Selector) Mode() Mode {
	return s.mode
}

// ParseMode maps a qotd.toml quotes.mode string to a Mode. The caller is
// expected to have already validated name against the known set (see
// config.Config.Validate); an unrecognized name falls back to Random.
func ParseMode(name string) Mode {
	switch name {
	case "sequential":
		return Sequential
	case "random-no-repeat":
		return RandomNoRepeat
	case "shuffle-cycle":
		return ShuffleCycle
	default:
		return Random
	}
}

func (s *Selector) nextSequential() int {
	i := s.position
	s.position = (s.position + 1) % s.size
	return i
}

func (s *Selector) nextRandomNoRepeat() int {
	if len(s.exhausted) >= s.size {
		s.exhausted = make(map[int]struct{}, s.size)
	}
	for {
		i := s.rng.Intn(s.size)
		if _, used := s.exhausted[i]; used {
			continue
		}
		s.exhausted[i] = struct{}{}
		return i
	}
}

func (s *Selector) nextShuffleCycle() int {
	if s.position == s.size {
		s.order = shuffledPermutation(s.rng, s.size)
		s.position = 0
	}
	i := s.order[s.position]
	s.position++
	return i
}

// shuffledPermutation returns a Fisher-Yates shuffle of [0, size).
func shuffledPermutation(rng *rand.Rand, size int) []int {
	order := make([]int, size)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(size, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
