package grammar

import (
	"golang.org/x/exp/rand"
)

// State is the mutable context of a single generation run: the run's RNG
// plus the per-alternative invocation counters. A State is exclusively
// owned by one run and must never be shared; the CheckedGrammar it is used
// with carries no mutable state of its own.
type State struct {
	rng    *rand.Rand
	counts map[AltID]int
}

// NewState creates a fresh run state around the given RNG.
func NewState(rng *rand.Rand) *State {
	return &State{
		rng:    rng,
		counts: make(map[AltID]int),
	}
}

// NewSeededState creates a fresh run state with its own RNG seeded
// deterministically.
func NewSeededState(seed uint64) *State {
	return NewState(rand.New(rand.NewSource(seed)))
}

// Rng returns the run's random number generator.
func (st *State) Rng() *rand.Rand {
	return st.rng
}

// Track records one selection of the given alternative.
func (st *State) Track(id AltID) {
	st.counts[id]++
}

// Count returns how often the given alternative has been selected in this
// run.
func (st *State) Count(id AltID) int {
	return st.counts[id]
}
