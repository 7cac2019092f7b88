package domain

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness source consumed by candidate generation and
// relevance selection. *rand.Rand from math/rand and math/rand/v2 both
// satisfy it.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// LockedRand serializes access to a Rand so one source can be shared
// across concurrent scans.
type LockedRand struct {
	mu  sync.Mutex
	src Rand
}

// NewLockedRand wraps src.
func NewLockedRand(src Rand) *LockedRand {
	return &LockedRand{src: src}
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
