package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vokabox/internal/models"
)

// MockLearnerRepository is a mock implementation of repository.LearnerRepository
type MockLearnerRepository struct {
	mock.Mock
}

func (m *MockLearnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) GetByUsername(ctx context.Context, username string) (*models.Learner, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) Upsert(ctx context.Context, learner models.Learner) (*models.Learner, error) {
	args := m.Called(ctx, learner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) IsAdmin(ctx context.Context, learnerID int64) (bool, error) {
	args := m.Called(ctx, learnerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLearnerRepository) SetAdmin(ctx context.Context, learnerID int64, admin bool) error {
	args := m.Called(ctx, learnerID, admin)
	return args.Error(0)
}
