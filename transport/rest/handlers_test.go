package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimplay/nim-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStats struct {
	stats *repository.Stats
	err   error
}

func (that *stubStats) Stats(context.Context) (*repository.Stats, error) {
	return that.stats, that.err
}

func newTestHandlers(stats *repository.Stats, err error) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlers(logger, &stubStats{stats: stats, err: err})
}

func TestPingHandler(t *testing.T) {
	recorder := httptest.NewRecorder()

	newTestHandlers(nil, nil).PingHandler(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestStatsHandler(t *testing.T) {
	t.Run("Reports archive totals", func(t *testing.T) {
		// Given: an archive with three finished games
		h := newTestHandlers(&repository.Stats{Games: 3, HumanWins: 2, OpponentWins: 1}, nil)

		// When: stats are requested
		recorder := httptest.NewRecorder()
		h.StatsHandler(recorder, httptest.NewRequest(http.MethodGet, "/stats", nil))

		// Then: the totals come back as JSON
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"games":3,"human_wins":2,"opponent_wins":1}`, recorder.Body.String())
	})

	t.Run("Error from the archive", func(t *testing.T) {
		h := newTestHandlers(nil, errors.New("boom"))

		recorder := httptest.NewRecorder()
		h.StatsHandler(recorder, httptest.NewRequest(http.MethodGet, "/stats", nil))

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
