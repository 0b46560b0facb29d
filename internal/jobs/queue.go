package jobs

import "github.com/vytor/vokabox/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueSweep() error
	EnqueueImport(path string, opts models.ImportOptions) error
}
