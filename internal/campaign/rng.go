package campaign

import "math/rand"

// RNG is the campaign's deterministic random stream. It counts draws so a
// restored campaign can replay the stream to the exact position it was saved
// at; identical seeds and call sequences produce identical campaigns.
type RNG struct {
	seed  int64
	draws uint64
	r     *rand.Rand
}

func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// RestoreRNG rebuilds a stream at the given draw position by replaying it.
func RestoreRNG(seed int64, draws uint64) *RNG {
	g := NewRNG(seed)
	for i := uint64(0); i < draws; i++ {
		g.r.Int63()
	}
	g.draws = draws
	return g
}

// NextInt returns a uniform value in [0, bound). Non-positive bounds return 0
// without consuming a draw.
func (g *RNG) NextInt(bound int) int {
	if bound <= 0 {
		return 0
	}
	g.draws++
	return int(g.r.Int63() % int64(bound))
}

func (g *RNG) Seed() int64   { return g.seed }
func (g *RNG) Draws() uint64 { return g.draws }
