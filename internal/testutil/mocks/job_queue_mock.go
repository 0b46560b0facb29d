package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/vokabox/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueSweep() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueImport(path string, opts models.ImportOptions) error {
	args := m.Called(path, opts)
	return args.Error(0)
}
