package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vokabox/internal/models"
)

// MockTrainingService is a mock implementation of services.TrainingService
type MockTrainingService struct {
	mock.Mock
}

func (m *MockTrainingService) StartSession(ctx context.Context, learnerID int64) (*models.SessionStart, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionStart), args.Error(1)
}

func (m *MockTrainingService) Queue(ctx context.Context, learnerID int64) (*models.SessionQueue, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionQueue), args.Error(1)
}

func (m *MockTrainingService) SubmitAnswer(ctx context.Context, learnerID, sessionID, progressID int64, answer string) (*models.AnswerOutcome, error) {
	args := m.Called(ctx, learnerID, sessionID, progressID, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnswerOutcome), args.Error(1)
}

func (m *MockTrainingService) EndSession(ctx context.Context, learnerID, sessionID int64) (*models.PracticeSession, error) {
	args := m.Called(ctx, learnerID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeSession), args.Error(1)
}

func (m *MockTrainingService) SweepStaleSessions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLearnerService is a mock implementation of services.LearnerService
type MockLearnerService struct {
	mock.Mock
}

func (m *MockLearnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Learner), args.Error(1)
}

func (m *MockLearnerService) CreateLearner(ctx context.Context, l models.Learner) (*models.Learner, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerService) GetLearner(ctx context.Context, id int64) (*models.Learner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerService) IsAdmin(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLearnerService) SetAdmin(ctx context.Context, id int64, admin bool) error {
	args := m.Called(ctx, id, admin)
	return args.Error(0)
}

// MockDashboardService is a mock implementation of services.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardOverview), args.Error(1)
}

func (m *MockDashboardService) Learner(ctx context.Context, learnerID int64) (*models.LearnerDashboardRow, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerDashboardRow), args.Error(1)
}
