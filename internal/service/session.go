package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/entity"
	"github.com/rocketscienceinc/memorize-backend/internal/theme"
)

// DefaultPublishTimeout bounds how long a publish may hold the session lock.
const DefaultPublishTimeout = 2 * time.Second

// Observer receives every snapshot a session publishes. It runs under the session lock
// and must not call back into the session.
type Observer func(snapshot entity.Snapshot[string])

type snapshotPublisher interface {
	Publish(ctx context.Context, snapshot entity.Snapshot[string]) error
}

// GameSession owns one game model on behalf of a single player. Each mutation replaces
// the observable state with a new snapshot version.
type GameSession struct {
	id             string
	theme          theme.Theme
	gameOpts       []entity.Option
	publisher      snapshotPublisher
	publishTimeout time.Duration

	mu           sync.Mutex
	game         *entity.MemoryGame[string]
	version      uint64
	observers    map[int]Observer
	nextObserver int
}

// NewGameSession deals the first game. publisher may be nil.
func NewGameSession(id string, gameTheme theme.Theme, publisher snapshotPublisher, opts ...entity.Option) (*GameSession, error) {
	game, err := theme.NewGame(gameTheme, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to deal game: %w", err)
	}

	return &GameSession{
		id:             id,
		theme:          gameTheme,
		gameOpts:       opts,
		publisher:      publisher,
		publishTimeout: DefaultPublishTimeout,
		game:           game,
		observers:      make(map[int]Observer),
	}, nil
}

func (that *GameSession) ID() string {
	return that.id
}

func (that *GameSession) Theme() theme.Theme {
	return that.theme
}

// Snapshot returns the current state.
func (that *GameSession) Snapshot() entity.Snapshot[string] {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// Subscribe registers an observer and returns the function that removes it.
func (that *GameSession) Subscribe(observer Observer) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	key := that.nextObserver
	that.nextObserver++
	that.observers[key] = observer

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.observers, key)
	}
}

// Choose picks a card by id. Choices the game ignores publish nothing.
func (that *GameSession) Choose(ctx context.Context, cardID int) (entity.Snapshot[string], error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.game.ChooseByID(cardID) {
		return that.snapshot(), nil
	}

	return that.commit(ctx)
}

func (that *GameSession) Shuffle(ctx context.Context) (entity.Snapshot[string], error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Shuffle()

	return that.commit(ctx)
}

// Restart swaps in a freshly dealt game with the same theme, discarding score and card state.
func (that *GameSession) Restart(ctx context.Context) (entity.Snapshot[string], error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := theme.NewGame(that.theme, that.gameOpts...)
	if err != nil {
		return that.snapshot(), fmt.Errorf("failed to deal game: %w", err)
	}

	that.game = game

	return that.commit(ctx)
}

// Publish re-sends the current snapshot without changing the version.
func (that *GameSession) Publish(ctx context.Context) (entity.Snapshot[string], error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := that.snapshot()

	return snapshot, that.notify(ctx, snapshot)
}

// commit bumps the version and publishes. Callers hold mu.
func (that *GameSession) commit(ctx context.Context) (entity.Snapshot[string], error) {
	that.version++
	snapshot := that.snapshot()

	return snapshot, that.notify(ctx, snapshot)
}

func (that *GameSession) notify(ctx context.Context, snapshot entity.Snapshot[string]) error {
	for _, observer := range that.observers {
		observer(snapshot)
	}

	if that.publisher == nil {
		return nil
	}

	publishCtx, cancel := context.WithTimeout(ctx, that.publishTimeout)
	defer cancel()

	if err := that.publisher.Publish(publishCtx, snapshot); err != nil {
		return fmt.Errorf("%w: version %d: %w", apperror.ErrNotPublished, snapshot.Version, err)
	}

	return nil
}

func (that *GameSession) snapshot() entity.Snapshot[string] {
	return entity.NewSnapshot(that.id, that.theme.Name, that.version, that.game)
}
