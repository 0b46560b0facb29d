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

type progressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

var progressColumns = []string{
	"id", "learner_id", "vocab_id", "stage", "due_date", "first_seen_date",
	"correct_count", "wrong_count", "last_seen",
}

func (r *progressRepository) Get(ctx context.Context, id int64) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: id=%d", id)

	query, args, err := sqlBuilder.Select(progressColumns...).From("progress").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var rec models.ProgressRecord
	err = r.db.GetContext(ctx, &rec, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("progress not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *progressRepository) ListForLearner(ctx context.Context, learnerID int64) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var records []models.ProgressRecord
	q := sqlBuilder.Select(progressColumns...).From("progress").
		Where(squirrel.Eq{"learner_id": learnerID}).
		OrderBy("id")
	if err := selectInto(ctx, r.db, &records, q); err != nil {
		log.Error("failed to list progress: learner_id=%d: %v", learnerID, err)
		return nil, err
	}
	log.Debug("loaded %d progress records for learner_id=%d", len(records), learnerID)
	return records, nil
}

func (r *progressRepository) CountForLearner(ctx context.Context, learnerID int64) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM progress WHERE learner_id = ?`, learnerID); err != nil {
		logger.FromContext(ctx).WithPrefix("progress_repo").Error("failed to count progress: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *progressRepository) ListForLearners(ctx context.Context, learnerIDs []int64) (map[int64][]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	out := make(map[int64][]models.ProgressRecord, len(learnerIDs))
	if len(learnerIDs) == 0 {
		return out, nil
	}

	var records []models.ProgressRecord
	q := sqlBuilder.Select(progressColumns...).From("progress").
		Where(squirrel.Eq{"learner_id": learnerIDs}).
		OrderBy("learner_id", "id")
	if err := selectInto(ctx, r.db, &records, q); err != nil {
		log.Error("failed to list progress for %d learners: %v", len(learnerIDs), err)
		return nil, err
	}
	for _, rec := range records {
		out[rec.LearnerID] = append(out[rec.LearnerID], rec)
	}
	log.Debug("loaded %d progress records for %d learners", len(records), len(learnerIDs))
	return out, nil
}

// InsertBatch inserts records in chunks. Records that already exist for the
// same learner and item are left untouched.
func (r *progressRepository) InsertBatch(ctx context.Context, records []models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("batch inserting %d progress records", len(records))

	if len(records) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sqlx.Tx) error {
		for start := 0; start < len(records); start += insertChunk {
			end := min(start+insertChunk, len(records))
			q := sqlBuilder.Insert("progress").Columns(
				"learner_id", "vocab_id", "stage", "due_date", "first_seen_date",
				"correct_count", "wrong_count", "last_seen",
			)
			for _, rec := range records[start:end] {
				q = q.Values(rec.LearnerID, rec.VocabID, rec.Stage, rec.DueDate, rec.FirstSeenDate,
					rec.CorrectCount, rec.WrongCount, rec.LastSeen)
			}
			query, args, err := q.Suffix("ON CONFLICT(learner_id, vocab_id) DO NOTHING").ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to insert progress chunk %d-%d: %v", start, end, err)
				return err
			}
		}
		return nil
	})
}

func (r *progressRepository) Update(ctx context.Context, rec models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("updating progress: id=%d, stage=%d, due=%s", rec.ID, rec.Stage, rec.DueDate)

	_, err := r.db.ExecContext(ctx, `
UPDATE progress
SET stage = ?, due_date = ?, first_seen_date = ?, correct_count = ?, wrong_count = ?, last_seen = ?
WHERE id = ?
`, rec.Stage, rec.DueDate, rec.FirstSeenDate, rec.CorrectCount, rec.WrongCount, rec.LastSeen, rec.ID)
	if err != nil {
		log.Error("failed to update progress: %v", err)
	}
	return err
}
