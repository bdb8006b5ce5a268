package entity

import (
	"fmt"

	"github.com/nimplay/nim-backend/internal/apperror"
)

const (
	StatusAwaitingHuman    = "awaiting_human"
	StatusAwaitingOpponent = "awaiting_opponent"
	StatusFinished         = "finished"

	MoverHuman    = "human"
	MoverOpponent = "opponent"
)

// Move addresses one pile and the number of items to remove from it.
type Move struct {
	PileIndex   int `json:"pile_index"`
	RemoveCount int `json:"remove_count"`
}

// Game is the live state of one Nim session. The human always moves first;
// normal-play convention: whoever removes the last item wins.
type Game struct {
	ID     string `json:"id"`
	Piles  []int  `json:"piles"`
	Turn   string `json:"player_turn,omitempty"`
	Winner string `json:"winner,omitempty"`
	Status string `json:"status"`
	Moves  int    `json:"moves"`
}

func NewGame(id string, piles []int) *Game {
	game := &Game{
		ID:     id,
		Piles:  append([]int(nil), piles...),
		Turn:   MoverHuman,
		Status: StatusAwaitingHuman,
	}

	// an all-zero starting position is already over, nobody removed anything
	if game.IsExhausted() {
		game.Turn = ""
		game.Status = StatusFinished
	}

	return game
}

// MakeTurn - validates and applies a move for the given mover.
// On any validation error the game is left untouched.
func (that *Game) MakeTurn(mover string, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mover {
		return apperror.ErrNotYourTurn
	}

	if move.PileIndex < 0 || move.PileIndex >= len(that.Piles) {
		return fmt.Errorf("%w: pile %d", apperror.ErrInvalidPileIndex, move.PileIndex)
	}

	if move.RemoveCount < 1 || move.RemoveCount > that.Piles[move.PileIndex] {
		return fmt.Errorf("%w: %d from pile of %d", apperror.ErrInvalidRemoveCount, move.RemoveCount, that.Piles[move.PileIndex])
	}

	that.Piles[move.PileIndex] -= move.RemoveCount
	that.Moves++

	if that.IsExhausted() {
		that.Winner = mover
		that.Turn = ""
		that.Status = StatusFinished
		return nil
	}

	if mover == MoverHuman {
		that.Turn = MoverOpponent
		that.Status = StatusAwaitingOpponent
	} else {
		that.Turn = MoverHuman
		that.Status = StatusAwaitingHuman
	}

	return nil
}

// IsExhausted reports whether every pile is empty.
func (that *Game) IsExhausted() bool {
	for _, pile := range that.Piles {
		if pile > 0 {
			return false
		}
	}
	return true
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsAwaitingHuman() bool {
	return that.Status == StatusAwaitingHuman
}

func (that *Game) IsAwaitingOpponent() bool {
	return that.Status == StatusAwaitingOpponent
}

// Snapshot returns a copy safe to hand to other layers; the live game is
// mutated in place by MakeTurn only.
func (that *Game) Snapshot() *Game {
	snapshot := *that
	snapshot.Piles = append([]int(nil), that.Piles...)
	return &snapshot
}
