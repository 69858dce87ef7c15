package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/entity"
)

var (
	ErrNoActiveGame   = errors.New("no active game")
	ErrCardIDRequired = errors.New("card_id is required")
)

// handleNewGame deals a new game for the connection, ending the previous one.
func (that *Server) handleNewGame(ctx context.Context, conn *connection, req *Request) (entity.Snapshot[string], error) {
	if conn.sessionID != "" {
		that.endGame(ctx, conn)
	}

	snapshot, err := that.gameUseCase.NewGame(ctx, req.Theme)
	snapshot, err = that.acceptUnpublished(ActionNew, snapshot, err)
	if err != nil {
		return snapshot, fmt.Errorf("failed to create a new game: %w", err)
	}

	conn.sessionID = snapshot.SessionID

	return snapshot, nil
}

func (that *Server) handleChoose(ctx context.Context, conn *connection, req *Request) (entity.Snapshot[string], error) {
	if conn.sessionID == "" {
		return entity.Snapshot[string]{}, ErrNoActiveGame
	}

	if req.CardID == nil {
		return entity.Snapshot[string]{}, ErrCardIDRequired
	}

	snapshot, err := that.gameUseCase.Choose(ctx, conn.sessionID, *req.CardID)
	snapshot, err = that.acceptUnpublished(ActionChoose, snapshot, err)
	if err != nil {
		return snapshot, fmt.Errorf("failed to choose card: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleShuffle(ctx context.Context, conn *connection, _ *Request) (entity.Snapshot[string], error) {
	if conn.sessionID == "" {
		return entity.Snapshot[string]{}, ErrNoActiveGame
	}

	snapshot, err := that.gameUseCase.Shuffle(ctx, conn.sessionID)
	snapshot, err = that.acceptUnpublished(ActionShuffle, snapshot, err)
	if err != nil {
		return snapshot, fmt.Errorf("failed to shuffle: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleRestart(ctx context.Context, conn *connection, _ *Request) (entity.Snapshot[string], error) {
	if conn.sessionID == "" {
		return entity.Snapshot[string]{}, ErrNoActiveGame
	}

	snapshot, err := that.gameUseCase.Restart(ctx, conn.sessionID)
	snapshot, err = that.acceptUnpublished(ActionRestart, snapshot, err)
	if err != nil {
		return snapshot, fmt.Errorf("failed to restart: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleState(ctx context.Context, conn *connection, _ *Request) (entity.Snapshot[string], error) {
	if conn.sessionID == "" {
		return entity.Snapshot[string]{}, ErrNoActiveGame
	}

	snapshot, err := that.gameUseCase.GetSnapshot(ctx, conn.sessionID)
	if err != nil {
		return snapshot, fmt.Errorf("failed to get game state: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleDisconnect(ctx context.Context, conn *connection) {
	if conn.sessionID == "" {
		return
	}

	that.endGame(ctx, conn)
}

func (that *Server) endGame(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "endGame", "sessionID", conn.sessionID)

	if err := that.gameUseCase.EndGame(ctx, conn.sessionID); err != nil {
		log.Error("failed to end game", "error", err)
	}

	conn.sessionID = ""
}

// acceptUnpublished keeps a snapshot whose change was applied even though the feed rejected it,
// so the player still sees the state the server holds.
func (that *Server) acceptUnpublished(action string, snapshot entity.Snapshot[string], err error) (entity.Snapshot[string], error) {
	if err == nil || !errors.Is(err, apperror.ErrNotPublished) || snapshot.SessionID == "" {
		return snapshot, err
	}

	that.logger.Warn("snapshot applied with publishing error",
		"action", action, "sessionID", snapshot.SessionID, "version", snapshot.Version, "error", err)

	return snapshot, nil
}
