package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
)

type vocabularyRepository struct {
	db *sqlx.DB
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sqlx.DB) repository.VocabularyRepository {
	return &vocabularyRepository{db: db}
}

var vocabColumns = []string{"id", "prompt", "accepted_answers", "is_idiom", "lesson_day", "created_at"}

func (r *vocabularyRepository) Get(ctx context.Context, id int64) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("getting vocabulary item: id=%d", id)

	query, args, err := sqlBuilder.Select(vocabColumns...).From("vocab").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var item models.VocabularyItem
	err = r.db.GetContext(ctx, &item, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("vocabulary item not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get vocabulary item: %v", err)
		return nil, err
	}
	return &item, nil
}

func (r *vocabularyRepository) GetMany(ctx context.Context, ids []int64) (map[int64]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	out := make(map[int64]models.VocabularyItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []models.VocabularyItem
	q := sqlBuilder.Select(vocabColumns...).From("vocab").Where(squirrel.Eq{"id": ids})
	if err := selectInto(ctx, r.db, &items, q); err != nil {
		log.Error("failed to load vocabulary items: %v", err)
		return nil, err
	}
	for _, item := range items {
		out[item.ID] = item
	}
	log.Debug("loaded %d of %d vocabulary items", len(out), len(ids))
	return out, nil
}

func (r *vocabularyRepository) List(ctx context.Context) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	var items []models.VocabularyItem
	q := sqlBuilder.Select(vocabColumns...).From("vocab").OrderBy("lesson_day IS NULL", "lesson_day", "id")
	if err := selectInto(ctx, r.db, &items, q); err != nil {
		log.Error("failed to list vocabulary: %v", err)
		return nil, err
	}
	log.Debug("listed %d vocabulary items", len(items))
	return items, nil
}

func (r *vocabularyRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM vocab`); err != nil {
		logger.FromContext(ctx).WithPrefix("vocab_repo").Error("failed to count vocabulary: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *vocabularyRepository) UpsertBatch(ctx context.Context, items []models.VocabularyItem) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("batch upserting %d vocabulary items", len(items))

	if len(items) == 0 {
		return 0, nil
	}

	created := 0
	err := tx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, item := range items {
			var id int64
			err := tx.GetContext(ctx, &id, `SELECT id FROM vocab WHERE prompt = ?`, item.Prompt)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				if _, err := tx.ExecContext(ctx, `
INSERT INTO vocab (prompt, accepted_answers, is_idiom, lesson_day)
VALUES (?, ?, ?, ?)
`, item.Prompt, item.AcceptedAnswers, item.IsIdiom, item.LessonDay); err != nil {
					log.Error("failed to insert vocabulary prompt=%q: %v", item.Prompt, err)
					return err
				}
				created++
			case err != nil:
				return err
			default:
				if _, err := tx.ExecContext(ctx, `
UPDATE vocab SET accepted_answers = ?, is_idiom = ?, lesson_day = ?
WHERE id = ?
`, item.AcceptedAnswers, item.IsIdiom, item.LessonDay, id); err != nil {
					log.Error("failed to update vocabulary id=%d: %v", id, err)
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("batch upsert completed, %d new items", created)
	return created, nil
}
