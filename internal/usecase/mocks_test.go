package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/memorize-backend/internal/entity"
	"github.com/rocketscienceinc/memorize-backend/internal/service"
)

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *service.GameSession) error {
	args := that.Called(ctx, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*service.GameSession, error) {
	args := that.Called(ctx, id)

	session, _ := args.Get(0).(*service.GameSession)

	return session, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(ctx context.Context, snapshot entity.Snapshot[string]) error {
	args := that.Called(ctx, snapshot)
	return args.Error(0)
}
