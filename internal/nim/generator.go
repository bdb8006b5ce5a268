package nim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nimplay/nim-backend/internal/apperror"
)

// Generator produces starting positions that are always winnable for the
// player moving first: never all-zero and never with a zero Nim-sum.
type Generator struct {
	rand *rand.Rand
}

func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(seed)), //nolint: gosec // not used for anything sensitive
	}
}

// Generate - rejection-samples pileCount counts uniform in [0, maxPerPile)
// until the position is non-terminal with a nonzero Nim-sum. Parameters that
// make such a position impossible fail fast instead of looping forever.
func (that *Generator) Generate(pileCount, maxPerPile int) ([]int, error) {
	if pileCount < 1 || maxPerPile < 2 {
		return nil, fmt.Errorf("%w: %d piles, counts below %d", apperror.ErrBadGameConfig, pileCount, maxPerPile)
	}

	piles := make([]int, pileCount)
	for {
		allZero := true
		for i := range piles {
			piles[i] = that.rand.Intn(maxPerPile)
			if piles[i] > 0 {
				allZero = false
			}
		}

		if !allZero && Sum(piles) != 0 {
			return piles, nil
		}
	}
}
