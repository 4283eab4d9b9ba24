package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRewardRepo struct {
	mock.Mock
	domain.RewardRepository
}

func (m *MockRewardRepo) GetUserReward(ctx context.Context, id, userID int) (*domain.UserReward, error) {
	args := m.Called(ctx, id, userID)

	reward, _ := args.Get(0).(*domain.UserReward)
	return reward, args.Error(1)
}

func (m *MockRewardRepo) MarkUsed(ctx context.Context, id int, usedAt time.Time) error {
	args := m.Called(ctx, id, usedAt)
	return args.Error(0)
}

func (m *MockRewardRepo) Restore(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRewardRepo) AppendPoints(ctx context.Context, entry *domain.PointsEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
