package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/service"
)

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *service.GameSession) error
	GetByID(ctx context.Context, id string) (*service.GameSession, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

// memorySessions keeps live sessions for the lifetime of the process only.
type memorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*service.GameSession
}

func NewSessionRepository() SessionRepository {
	return &memorySessions{
		sessions: make(map[string]*service.GameSession),
	}
}

func (that *memorySessions) CreateOrUpdate(_ context.Context, session *service.GameSession) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID()] = session

	return nil
}

func (that *memorySessions) GetByID(_ context.Context, id string) (*service.GameSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return session, nil
}

func (that *memorySessions) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	return nil
}

func (that *memorySessions) Count(_ context.Context) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
