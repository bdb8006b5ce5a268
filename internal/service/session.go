package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nimplay/nim-backend/internal/apperror"
	"github.com/nimplay/nim-backend/internal/entity"
	"github.com/nimplay/nim-backend/internal/nim"
)

// Listener receives state snapshots for the rendering layer.
type Listener interface {
	OnStateChange(game *entity.Game)
	OnTerminal(game *entity.Game)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepo interface {
	SaveResult(ctx context.Context, result *entity.Result) error
}

// Rules are the fixed parameters a session is (re)started with.
type Rules struct {
	PileCount  int
	MaxPerPile int
	ThinkDelay time.Duration
}

type SessionService interface {
	Start(ctx context.Context) (*entity.Game, error)
	Resume(ctx context.Context, sessionID string) (*entity.Game, error)
	SubmitHumanMove(ctx context.Context, move entity.Move) (*entity.Game, error)
	Restart(ctx context.Context) (*entity.Game, error)
	Close()
}

// sessionService owns the single live game of one client connection. All
// entry points serialize on the mutex; the deferred opponent reply carries
// the generation it was scheduled under and is dropped if a restart bumped
// the counter in the meantime.
type sessionService struct {
	logger *slog.Logger

	generator *nim.Generator
	opponent  OpponentService
	sessions  sessionRepo
	archive   archiveRepo
	listener  Listener
	rules     Rules

	mu         sync.Mutex
	game       *entity.Game
	generation uint64
	pending    *time.Timer
}

func NewSessionService(logger *slog.Logger, generator *nim.Generator, opponent OpponentService, sessions sessionRepo, archive archiveRepo, rules Rules, listener Listener) SessionService {
	return &sessionService{
		logger:    logger.With("component", "session"),
		generator: generator,
		opponent:  opponent,
		sessions:  sessions,
		archive:   archive,
		listener:  listener,
		rules:     rules,
	}
}

func (that *sessionService) Start(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.startLocked(ctx)
}

// Restart - discards the live game, invalidates any pending opponent reply
// and starts over with the same rules.
func (that *sessionService) Restart(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game != nil {
		if err := that.sessions.DeleteByID(ctx, that.game.ID); err != nil {
			that.logger.Error("failed to delete session", "sessionID", that.game.ID, "error", err)
		}
	}

	return that.startLocked(ctx)
}

func (that *sessionService) startLocked(ctx context.Context) (*entity.Game, error) {
	that.invalidatePendingLocked()

	piles, err := that.generator.Generate(that.rules.PileCount, that.rules.MaxPerPile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate starting position: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), piles)
	if err = that.sessions.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	that.game = game
	that.logger.Info("session started", "sessionID", game.ID, "piles", game.Piles)

	snapshot := game.Snapshot()
	that.listener.OnStateChange(snapshot)

	return snapshot, nil
}

// Resume - reattaches to a persisted session, e.g. after the page reconnects.
// A snapshot that was waiting on the opponent gets its reply rescheduled.
func (that *sessionService) Resume(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	that.invalidatePendingLocked()
	that.game = game
	that.logger.Info("session resumed", "sessionID", game.ID)

	if game.IsAwaitingOpponent() {
		that.scheduleOpponentLocked(ctx)
	}

	snapshot := game.Snapshot()
	that.listener.OnStateChange(snapshot)

	return snapshot, nil
}

// SubmitHumanMove - applies a human move. While the opponent reply is pending
// the game is not awaiting the human, so input is rejected without mutation.
func (that *sessionService) SubmitHumanMove(ctx context.Context, move entity.Move) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return nil, apperror.ErrNoActiveSession
	}

	if err := that.game.MakeTurn(entity.MoverHuman, move); err != nil {
		return that.game.Snapshot(), fmt.Errorf("failed to make turn: %w", err)
	}

	if err := that.sessions.CreateOrUpdate(ctx, that.game); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	snapshot := that.game.Snapshot()
	that.listener.OnStateChange(snapshot)

	if that.game.IsFinished() {
		that.finishLocked(ctx)
		return snapshot, nil
	}

	that.scheduleOpponentLocked(ctx)

	return snapshot, nil
}

// Close drops any pending opponent reply; used when the connection goes away.
func (that *sessionService) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.invalidatePendingLocked()
}

func (that *sessionService) invalidatePendingLocked() {
	that.generation++
	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}
}

func (that *sessionService) scheduleOpponentLocked(ctx context.Context) {
	generation := that.generation
	that.pending = time.AfterFunc(that.rules.ThinkDelay, func() {
		that.opponentReply(ctx, generation)
	})
}

func (that *sessionService) opponentReply(ctx context.Context, generation uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	// a restart after scheduling makes this reply stale; it must not touch
	// the new game
	if generation != that.generation {
		return
	}

	if that.game == nil || !that.game.IsAwaitingOpponent() {
		return
	}

	log := that.logger.With("method", "opponentReply", "sessionID", that.game.ID)

	if err := that.opponent.MakeTurn(that.game); err != nil {
		log.Error("opponent turn failed", "error", err)
		return
	}

	if err := that.sessions.CreateOrUpdate(ctx, that.game); err != nil {
		log.Error("failed to save session", "error", err)
	}

	that.listener.OnStateChange(that.game.Snapshot())

	if that.game.IsFinished() {
		that.finishLocked(ctx)
	}
}

func (that *sessionService) finishLocked(ctx context.Context) {
	log := that.logger.With("method", "finish", "sessionID", that.game.ID)

	result := &entity.Result{
		SessionID:  that.game.ID,
		Winner:     that.game.Winner,
		Moves:      that.game.Moves,
		FinishedAt: time.Now().UTC(),
	}

	if err := that.archive.SaveResult(ctx, result); err != nil {
		log.Error("failed to archive result", "error", err)
	}

	if err := that.sessions.DeleteByID(ctx, that.game.ID); err != nil {
		log.Error("failed to delete session", "error", err)
	}

	log.Info("game finished", "winner", that.game.Winner, "moves", that.game.Moves)
	that.listener.OnTerminal(that.game.Snapshot())
}
