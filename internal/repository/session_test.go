package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/service"
	"github.com/rocketscienceinc/memorize-backend/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, id string) *service.GameSession {
	t.Helper()

	session, err := service.NewGameSession(id, theme.Tools, nil)
	require.NoError(t, err)

	return session
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	sessionRepo := NewSessionRepository()

	// Given: a session
	session := newSession(t, "123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the session is stored
	require.NoError(t, err)
	assert.Equal(t, 1, sessionRepo.Count(ctx))
}

func TestSessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID_Success", func(t *testing.T) {
		sessionRepo := NewSessionRepository()

		// Given: a stored session
		session := newSession(t, "123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID())

		// Then: the same session is returned
		require.NoError(t, err)
		assert.Same(t, session, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		sessionRepo := NewSessionRepository()

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteByID_Success", func(t *testing.T) {
		sessionRepo := NewSessionRepository()

		// Given: a stored session
		session := newSession(t, "123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID())

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID())
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Equal(t, 0, sessionRepo.Count(ctx))
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		sessionRepo := NewSessionRepository()

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
