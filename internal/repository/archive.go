package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nimplay/nim-backend/internal/entity"
)

// Stats aggregates the archived results for the stats endpoint.
type Stats struct {
	Games        int `json:"games"`
	HumanWins    int `json:"human_wins"`
	OpponentWins int `json:"opponent_wins"`
}

type ArchiveRepository interface {
	SaveResult(ctx context.Context, result *entity.Result) error
	Stats(ctx context.Context) (*Stats, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) SaveResult(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (session_id, winner, moves, finished_at) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, result.SessionID, result.Winner, result.Moves, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *dbArchive) Stats(ctx context.Context) (*Stats, error) {
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0)
	FROM results`

	var stats Stats

	err := that.conn.QueryRowContext(ctx, query, entity.MoverHuman, entity.MoverOpponent).
		Scan(&stats.Games, &stats.HumanWins, &stats.OpponentWins)
	if err != nil {
		return nil, fmt.Errorf("can't read stats: %w", err)
	}

	return &stats, nil
}
