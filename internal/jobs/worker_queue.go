package jobs

import (
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/worker"
)

// WorkerQueue implements JobQueue on a worker pool
type WorkerQueue struct {
	pool     *worker.Pool
	sweeper  worker.SessionSweeper
	importer worker.VocabularyImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, sweeper worker.SessionSweeper, importer worker.VocabularyImporter) JobQueue {
	return &WorkerQueue{
		pool:     pool,
		sweeper:  sweeper,
		importer: importer,
	}
}

func (q *WorkerQueue) EnqueueSweep() error {
	return q.pool.Submit(&worker.SweepStaleSessionsJob{Sweeper: q.sweeper})
}

func (q *WorkerQueue) EnqueueImport(path string, opts models.ImportOptions) error {
	return q.pool.Submit(&worker.ImportVocabularyJob{
		Importer: q.importer,
		Path:     path,
		Options:  opts,
	})
}
