package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nimplay/nim-backend/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	StatsHandler(w http.ResponseWriter, r *http.Request)
}

type statsProvider interface {
	Stats(ctx context.Context) (*repository.Stats, error)
}

type handlers struct {
	logger *slog.Logger
	stats  statsProvider
}

func NewHandlers(logger *slog.Logger, stats statsProvider) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		stats:  stats,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// StatsHandler - reports how the archive looks: finished games and wins per side.
func (that *handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		that.logger.Error("failed to read stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		that.logger.Error("failed to encode stats", "error", err)
	}
}
