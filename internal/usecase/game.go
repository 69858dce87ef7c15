package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/memorize-backend/internal/entity"
	"github.com/rocketscienceinc/memorize-backend/internal/service"
	"github.com/rocketscienceinc/memorize-backend/internal/theme"
)

type GameUseCase interface {
	NewGame(ctx context.Context, themeName string) (entity.Snapshot[string], error)
	GetSnapshot(ctx context.Context, sessionID string) (entity.Snapshot[string], error)

	Choose(ctx context.Context, sessionID string, cardID int) (entity.Snapshot[string], error)
	Shuffle(ctx context.Context, sessionID string) (entity.Snapshot[string], error)
	Restart(ctx context.Context, sessionID string) (entity.Snapshot[string], error)

	EndGame(ctx context.Context, sessionID string) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *service.GameSession) error
	GetByID(ctx context.Context, id string) (*service.GameSession, error)
	DeleteByID(ctx context.Context, id string) error
}

type snapshotPublisher interface {
	Publish(ctx context.Context, snapshot entity.Snapshot[string]) error
}

// Settings are the game parameters shared by every session.
type Settings struct {
	DefaultTheme string
	// Pairs overrides the theme's pair count when positive.
	Pairs int
	// Scoring is applied as given; config supplies the defaults.
	Scoring entity.ScoringPolicy
	// NewShuffler gives each session its own random source. Nil uses the game default.
	NewShuffler func() entity.Shuffler
}

type gameUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	publisher   snapshotPublisher
	settings    Settings
}

// NewGameUseCase wires the session registry. publisher may be nil.
func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo, publisher snapshotPublisher, settings Settings) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		sessionRepo: sessionRepo,
		publisher:   publisher,
		settings:    settings,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context, themeName string) (entity.Snapshot[string], error) {
	if themeName == "" {
		themeName = that.settings.DefaultTheme
	}

	gameTheme, err := theme.Lookup(themeName)
	if err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to find theme: %w", err)
	}

	if that.settings.Pairs > 0 {
		gameTheme = gameTheme.WithPairs(that.settings.Pairs)
	}

	opts := []entity.Option{entity.WithScoring(that.settings.Scoring)}
	if that.settings.NewShuffler != nil {
		opts = append(opts, entity.WithShuffler(that.settings.NewShuffler()))
	}

	session, err := service.NewGameSession(uuid.NewString(), gameTheme, that.publisher, opts...)
	if err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to create session: %w", err)
	}

	session.Subscribe(that.logFinishedGames())

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("game created", "sessionID", session.ID(), "theme", gameTheme.Name, "pairs", gameTheme.Pairs)

	snapshot, err := session.Publish(ctx)
	if err != nil {
		return snapshot, fmt.Errorf("failed to publish first snapshot: %w", err)
	}

	return snapshot, nil
}

func (that *gameUseCase) GetSnapshot(ctx context.Context, sessionID string) (entity.Snapshot[string], error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to get session: %w", err)
	}

	return session.Snapshot(), nil
}

func (that *gameUseCase) Choose(ctx context.Context, sessionID string, cardID int) (entity.Snapshot[string], error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to get session: %w", err)
	}

	snapshot, err := session.Choose(ctx, cardID)
	if err != nil {
		return snapshot, fmt.Errorf("failed to choose card %d: %w", cardID, err)
	}

	return snapshot, nil
}

func (that *gameUseCase) Shuffle(ctx context.Context, sessionID string) (entity.Snapshot[string], error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to get session: %w", err)
	}

	snapshot, err := session.Shuffle(ctx)
	if err != nil {
		return snapshot, fmt.Errorf("failed to shuffle: %w", err)
	}

	return snapshot, nil
}

func (that *gameUseCase) Restart(ctx context.Context, sessionID string) (entity.Snapshot[string], error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to get session: %w", err)
	}

	snapshot, err := session.Restart(ctx)
	if err != nil {
		return snapshot, fmt.Errorf("failed to restart: %w", err)
	}

	that.logger.Info("game restarted", "sessionID", sessionID)

	return snapshot, nil
}

func (that *gameUseCase) EndGame(ctx context.Context, sessionID string) error {
	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("game ended", "sessionID", sessionID)

	return nil
}

// logFinishedGames logs once per dealt game, when its last pair is matched.
func (that *gameUseCase) logFinishedGames() service.Observer {
	finished := false

	return func(snapshot entity.Snapshot[string]) {
		if !snapshot.IsFinished {
			finished = false
			return
		}

		if finished || len(snapshot.Cards) == 0 {
			return
		}

		finished = true
		that.logger.Info("game finished", "sessionID", snapshot.SessionID, "score", snapshot.Score, "version", snapshot.Version)
	}
}
