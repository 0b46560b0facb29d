package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
)

type learnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation
func NewLearnerRepository(db *sqlx.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

const learnerColumns = `id, username, display_name, class_name, created_at`

func (r *learnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("getting learner: id=%d", id)

	var l models.Learner
	err := r.db.GetContext(ctx, &l, `SELECT `+learnerColumns+` FROM learners WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("learner not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) GetByUsername(ctx context.Context, username string) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("getting learner: username=%s", username)

	var l models.Learner
	err := r.db.GetContext(ctx, &l, `SELECT `+learnerColumns+` FROM learners WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner by username: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")

	var learners []models.Learner
	err := r.db.SelectContext(ctx, &learners, `SELECT `+learnerColumns+` FROM learners ORDER BY class_name, username`)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, err
	}
	log.Debug("listed %d learners", len(learners))
	return learners, nil
}

func (r *learnerRepository) Upsert(ctx context.Context, l models.Learner) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("upserting learner: username=%s", l.Username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO learners (username, display_name, class_name)
VALUES (?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
    display_name = excluded.display_name,
    class_name = excluded.class_name
`, l.Username, l.DisplayName, l.ClassName)
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, err
	}
	return r.GetByUsername(ctx, l.Username)
}

func (r *learnerRepository) IsAdmin(ctx context.Context, learnerID int64) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM admins WHERE learner_id = ?`, learnerID); err != nil {
		logger.FromContext(ctx).WithPrefix("learner_repo").Error("failed to check admin: %v", err)
		return false, err
	}
	return n > 0, nil
}

func (r *learnerRepository) SetAdmin(ctx context.Context, learnerID int64, admin bool) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("setting admin: learner_id=%d, admin=%t", learnerID, admin)

	var err error
	if admin {
		_, err = r.db.ExecContext(ctx, `INSERT INTO admins (learner_id) VALUES (?) ON CONFLICT(learner_id) DO NOTHING`, learnerID)
	} else {
		_, err = r.db.ExecContext(ctx, `DELETE FROM admins WHERE learner_id = ?`, learnerID)
	}
	if err != nil {
		log.Error("failed to set admin: %v", err)
	}
	return err
}
