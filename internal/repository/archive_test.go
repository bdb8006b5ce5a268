package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nimplay/nim-backend/internal/entity"
	"github.com/nimplay/nim-backend/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) (context.Context, ArchiveRepository) {
	t.Helper()

	ctx := context.Background()

	sqliteStorage, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sqliteStorage.Close())
	})

	require.NoError(t, sqliteStorage.Init(ctx))

	return ctx, NewArchiveRepository(sqliteStorage.Connection)
}

func TestArchiveRepository_Stats(t *testing.T) {
	t.Run("Empty archive", func(t *testing.T) {
		ctx, archive := newTestArchive(t)

		// When: stats are read before any game finished
		stats, err := archive.Stats(ctx)

		// Then: everything is zero
		require.NoError(t, err)
		assert.Equal(t, &Stats{}, stats)
	})

	t.Run("Counts wins per side", func(t *testing.T) {
		ctx, archive := newTestArchive(t)

		// Given: two human wins and one opponent win on record
		finishedAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
		results := []*entity.Result{
			{SessionID: "a", Winner: entity.MoverHuman, Moves: 7, FinishedAt: finishedAt},
			{SessionID: "b", Winner: entity.MoverHuman, Moves: 5, FinishedAt: finishedAt},
			{SessionID: "c", Winner: entity.MoverOpponent, Moves: 8, FinishedAt: finishedAt},
		}
		for _, result := range results {
			require.NoError(t, archive.SaveResult(ctx, result))
		}

		// When: stats are read
		stats, err := archive.Stats(ctx)

		// Then: the aggregate matches the archived results
		require.NoError(t, err)
		assert.Equal(t, &Stats{Games: 3, HumanWins: 2, OpponentWins: 1}, stats)
	})
}
