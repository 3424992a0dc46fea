package gallery

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// GeneratorSecure uses random UUIDs, falling back to pseudo ids when
	// the system random source is unavailable.
	GeneratorSecure = "secure"
	// GeneratorPseudo always issues "fanart-" tokens.
	GeneratorPseudo = "pseudo"

	pseudoPrefix = "fanart-"
	pseudoLength = 9
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// IDGenerator issues entry identifiers.
type IDGenerator interface {
	NewID() string
	Kind() string
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
func (UUIDGenerator) Kind() string  { return GeneratorSecure }

// PseudoGenerator issues "fanart-" followed by 9 base-36 characters from a
// seeded PRNG. It never returns the same id twice.
type PseudoGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	issued map[string]struct{}
}

func NewPseudoGenerator(seed uint64) *PseudoGenerator {
	return &PseudoGenerator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		issued: make(map[string]struct{}),
	}
}

func (g *PseudoGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, pseudoLength)
	for {
		for i := range buf {
			buf[i] = base36[g.rng.IntN(len(base36))]
		}
		id := pseudoPrefix + string(buf)
		if _, dup := g.issued[id]; dup {
			continue
		}
		g.issued[id] = struct{}{}
		return id
	}
}

func (g *PseudoGenerator) Kind() string { return GeneratorPseudo }

// NewIDGenerator selects a generator once, at construction.
// An empty kind means GeneratorSecure.
func NewIDGenerator(kind string) (IDGenerator, error) {
	switch kind {
	case "", GeneratorSecure:
		if _, err := uuid.NewRandom(); err != nil {
			return NewPseudoGenerator(uint64(time.Now().UnixNano())), nil
		}
		return UUIDGenerator{}, nil
	case GeneratorPseudo:
		return NewPseudoGenerator(uint64(time.Now().UnixNano())), nil
	default:
		return nil, fmt.Errorf("unknown id generator %q (want %s or %s)", kind, GeneratorSecure, GeneratorPseudo)
	}
}
