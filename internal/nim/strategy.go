package nim

import (
	"errors"
	"fmt"

	"github.com/nimplay/nim-backend/internal/entity"
)

var ErrNoMoves = errors.New("no moves available")

// Sum - bitwise XOR of all pile counts. Zero means the position is lost for
// the side to move (a P-position), anything else is winnable.
func Sum(piles []int) int {
	sum := 0
	for _, pile := range piles {
		sum ^= pile
	}

	return sum
}

// OptimalMove - picks a move for the given position.
//
// When the Nim-sum is nonzero there is always a pile that can be reduced to
// pile XOR sum, leaving a zero-sum position; the first such pile in index
// order is chosen. When the Nim-sum is already zero no move preserves the
// advantage, so one item is removed from the largest pile (lowest index on
// ties) and we play on hoping for a mistake.
func OptimalMove(piles []int) (entity.Move, error) {
	sum := Sum(piles)
	if sum == 0 {
		return fallbackMove(piles)
	}

	for i, pile := range piles {
		if target := pile ^ sum; target < pile {
			return entity.Move{PileIndex: i, RemoveCount: pile - target}, nil
		}
	}

	// can't happen: the pile carrying the top bit of a nonzero sum always shrinks
	panic(fmt.Sprintf("nim: no reducible pile in %v, sum %d", piles, sum))
}

func fallbackMove(piles []int) (entity.Move, error) {
	largest := -1
	for i, pile := range piles {
		if pile > 0 && (largest < 0 || pile > piles[largest]) {
			largest = i
		}
	}

	if largest < 0 {
		return entity.Move{}, ErrNoMoves
	}

	return entity.Move{PileIndex: largest, RemoveCount: 1}, nil
}
