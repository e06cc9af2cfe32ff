package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// IDGenerator produces order and trade identifiers of the form
// "<ms-timestamp>-<6 random digits>". The random source and clock are
// injectable so tests can generate deterministic ids.
type IDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewIDGenerator(rng *rand.Rand, now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{rng: rng, now: now}
}

var (
	defaultIDGen *IDGenerator
	onceIDGen    sync.Once
)

// DefaultIDGenerator is the process-scoped generator seeded from the clock.
func DefaultIDGenerator() *IDGenerator {
	onceIDGen.Do(func() {
		defaultIDGen = NewIDGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
	})
	return defaultIDGen
}

func (g *IDGenerator) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%d-%06d", g.now().UnixMilli(), g.rng.Intn(1000000))
}

// NowMillis is the generator's clock in milliseconds since epoch; order and
// trade timestamps come from the same clock as the ids.
func (g *IDGenerator) NowMillis() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().UnixMilli()
}
