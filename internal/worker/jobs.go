package worker

import (
	"context"

	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
)

// SessionSweeper closes abandoned practice sessions.
type SessionSweeper interface {
	SweepStaleSessions(ctx context.Context) (int, error)
}

// VocabularyImporter loads a vocabulary file.
type VocabularyImporter interface {
	Import(ctx context.Context, path string, opts models.ImportOptions) (*models.ImportResult, error)
}

type SweepStaleSessionsJob struct {
	Sweeper SessionSweeper
}

func (j *SweepStaleSessionsJob) Name() string { return "sweep_stale_sessions" }

func (j *SweepStaleSessionsJob) Run(ctx context.Context) error {
	closed, err := j.Sweeper.SweepStaleSessions(ctx)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("sweep closed %d sessions", closed)
	return nil
}

// ImportVocabularyJob imports an uploaded vocabulary file in the background.
type ImportVocabularyJob struct {
	Importer VocabularyImporter
	Path     string
	Options  models.ImportOptions
}

func (j *ImportVocabularyJob) Name() string { return "import_vocabulary" }

func (j *ImportVocabularyJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("path", j.Path)
	result, err := j.Importer.Import(ctx, j.Path, j.Options)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		log.Warn("import: %s", msg)
	}
	log.Info("imported %d new items (%d processed, %d skipped)", result.Imported, result.Processed, result.Skipped)
	return nil
}
