package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nimplay/nim-backend/internal/entity"
	"github.com/nimplay/nim-backend/internal/service"
)

// handleMessage dispatches one client action. State snapshots reach the
// client through the listener, so handlers only translate payloads and
// surface validation errors.
func (that *Server) handleMessage(ctx context.Context, client *client, session service.SessionService, msg *Message) error {
	switch msg.Action {
	case ActionStart:
		if _, err := session.Start(ctx); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		return nil

	case ActionRestart:
		if _, err := session.Restart(ctx); err != nil {
			return fmt.Errorf("failed to restart session: %w", err)
		}
		return nil

	case ActionResume:
		var payload ResumePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal resume payload: %w", err)
		}

		if _, err := session.Resume(ctx, payload.SessionID); err != nil {
			return fmt.Errorf("failed to resume session: %w", err)
		}
		return nil

	case ActionMove:
		var payload MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal move payload: %w", err)
		}

		move := entity.Move{PileIndex: payload.PileIndex, RemoveCount: payload.RemoveCount}
		if _, err := session.SubmitHumanMove(ctx, move); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, msg.Action)
	}
}

// OnStateChange implements service.Listener.
func (that *client) OnStateChange(game *entity.Game) {
	if err := that.send(ActionState, StatePayload{Game: game}); err != nil {
		that.logger.Error("failed to push state", "error", err)
	}
}

// OnTerminal implements service.Listener.
func (that *client) OnTerminal(game *entity.Game) {
	if err := that.send(ActionTerminal, TerminalPayload{Winner: game.Winner, Game: game}); err != nil {
		that.logger.Error("failed to push terminal state", "error", err)
	}
}
