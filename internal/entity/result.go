package entity

import "time"

// Result is the archived outcome of one finished game.
type Result struct {
	SessionID  string    `json:"session_id"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
