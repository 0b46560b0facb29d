package api

import (
	"context"

	"github.com/vytor/vokabox/internal/jobs"
	"github.com/vytor/vokabox/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	TrainingService  services.TrainingService
	LearnerService   services.LearnerService
	DashboardService services.DashboardService
	JobQueue         jobs.JobQueue
	DB               Pinger
	// UploadDir receives staged import files; empty means os.TempDir().
	UploadDir      string
	MaxUploadBytes int64
}

// DefaultMaxUploadBytes caps an import upload when MaxUploadBytes is unset.
const DefaultMaxUploadBytes = 10 << 20
