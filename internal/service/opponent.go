package service

import (
	"fmt"

	"github.com/nimplay/nim-backend/internal/entity"
	"github.com/nimplay/nim-backend/internal/nim"
)

type OpponentService interface {
	MakeTurn(game *entity.Game) error
}

type opponentService struct{}

func NewOpponentService() OpponentService {
	return &opponentService{}
}

// MakeTurn - computes the engine's move for the current position and applies
// it through the same validated path human moves take.
func (that *opponentService) MakeTurn(game *entity.Game) error {
	move, err := nim.OptimalMove(game.Piles)
	if err != nil {
		return fmt.Errorf("opponent has no move: %w", err)
	}

	if err = game.MakeTurn(entity.MoverOpponent, move); err != nil {
		return fmt.Errorf("opponent failed to make turn: %w", err)
	}

	return nil
}
