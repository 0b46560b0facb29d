package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vokabox/internal/models"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Get(ctx context.Context, id int64) (*models.VocabularyItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) GetMany(ctx context.Context, ids []int64) (map[int64]models.VocabularyItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) List(ctx context.Context) ([]models.VocabularyItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) UpsertBatch(ctx context.Context, items []models.VocabularyItem) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}
