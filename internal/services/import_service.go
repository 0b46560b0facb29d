package services

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/importer"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
)

// ImportService loads vocabulary files into the shared list
type ImportService interface {
	Import(ctx context.Context, path string, opts models.ImportOptions) (*models.ImportResult, error)
}

type importService struct {
	vocabRepo repository.VocabularyRepository
}

// NewImportService creates a new ImportService
func NewImportService(vocabRepo repository.VocabularyRepository) ImportService {
	return &importService{vocabRepo: vocabRepo}
}

// Import reads path and upserts its items. Learners pick up new items the
// next time their queue is built.
func (s *importService) Import(ctx context.Context, path string, opts models.ImportOptions) (*models.ImportResult, error) {
	log := logger.FromContext(ctx).WithPrefix("import").WithField("path", path)
	log.Info("importing vocabulary")

	if opts.RemoveSource {
		defer func() {
			if err := os.Remove(path); err != nil && !stderrors.Is(err, os.ErrNotExist) {
				log.Warn("failed to remove import source: %v", err)
			}
		}()
	}

	items, result, err := importer.ReadFile(ctx, path, opts)
	if err != nil {
		if stderrors.Is(err, importer.ErrUnsupportedFormat) {
			return nil, errors.NewValidationError("file", "must be .xlsx or .csv")
		}
		return nil, errors.NewBadRequestError("cannot read vocabulary file: " + err.Error())
	}

	created, err := s.vocabRepo.UpsertBatch(ctx, items)
	if err != nil {
		log.Error("failed to save vocabulary: %v", err)
		return nil, errors.NewStoreError("save vocabulary", err)
	}
	result.Imported = created

	log.Info("import finished: processed=%d, new=%d, skipped=%d", result.Processed, result.Imported, result.Skipped)
	return &result, nil
}
