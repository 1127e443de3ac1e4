package seeder

import (
	"math"
	mrand "math/rand"
	"sync"
	"time"
)

// rng is a mutex-guarded math/rand source. Non-crypto randomness is fine for
// test data; the mutex makes it safe for the customer worker pool.
type rng struct {
	mu sync.Mutex
	r  *mrand.Rand
}

func newRNG(seed int64) *rng {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &rng{r: mrand.New(mrand.NewSource(seed))}
}

func (g *rng) intn(n int) int {
	if n <= 0 {
		return 0
	}
	g.mu.Lock()
	v := g.r.Intn(n)
	g.mu.Unlock()
	return v
}

// intRange returns a random int in [min, max] inclusive.
func (g *rng) intRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + g.intn(max-min+1)
}

func (g *rng) floatRange(min, max float64) float64 {
	g.mu.Lock()
	v := min + g.r.Float64()*(max-min)
	g.mu.Unlock()
	return v
}

func (g *rng) float64() float64 {
	g.mu.Lock()
	v := g.r.Float64()
	g.mu.Unlock()
	return v
}

func (g *rng) perm(n int) []int {
	g.mu.Lock()
	p := g.r.Perm(n)
	g.mu.Unlock()
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
