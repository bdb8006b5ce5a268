package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrInvalidPileIndex   = errors.New("invalid pile index")
	ErrInvalidRemoveCount = errors.New("invalid remove count")
	ErrBadGameConfig      = errors.New("no winnable starting position exists for this configuration")
	ErrNoActiveSession    = errors.New("no active session, start one first")
)
