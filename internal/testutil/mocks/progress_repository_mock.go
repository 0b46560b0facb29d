package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vokabox/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, id int64) (*models.ProgressRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) ListForLearner(ctx context.Context, learnerID int64) ([]models.ProgressRecord, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) CountForLearner(ctx context.Context, learnerID int64) (int, error) {
	args := m.Called(ctx, learnerID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) ListForLearners(ctx context.Context, learnerIDs []int64) (map[int64][]models.ProgressRecord, error) {
	args := m.Called(ctx, learnerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) InsertBatch(ctx context.Context, records []models.ProgressRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockProgressRepository) Update(ctx context.Context, record models.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
