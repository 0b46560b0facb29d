package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
)

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

var sessionColumns = []string{
	"id", "learner_id", "started_at", "ended_at", "duration_seconds",
	"cards_answered", "correct_answers", "wrong_answers", "last_activity_at",
}

func (r *sessionRepository) Create(ctx context.Context, s models.PracticeSession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating session: learner_id=%d", s.LearnerID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO practice_sessions (learner_id, started_at, ended_at, duration_seconds, cards_answered, correct_answers, wrong_answers, last_activity_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, s.LearnerID, utc(s.StartedAt), utcPtr(s.EndedAt), s.DurationSeconds, s.CardsAnswered, s.CorrectAnswers, s.WrongAnswers, utcPtr(s.LastActivityAt))
	if err != nil {
		log.Error("failed to create session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session created: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	query, args, err := sqlBuilder.Select(sessionColumns...).From("practice_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var s models.PracticeSession
	err = r.db.GetContext(ctx, &s, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Update(ctx context.Context, s models.PracticeSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session: id=%d, cards=%d, open=%t", s.ID, s.CardsAnswered, s.Open())

	_, err := r.db.ExecContext(ctx, `
UPDATE practice_sessions
SET ended_at = ?, duration_seconds = ?, cards_answered = ?, correct_answers = ?, wrong_answers = ?, last_activity_at = ?
WHERE id = ?
`, utcPtr(s.EndedAt), s.DurationSeconds, s.CardsAnswered, s.CorrectAnswers, s.WrongAnswers, utcPtr(s.LastActivityAt), s.ID)
	if err != nil {
		log.Error("failed to update session: %v", err)
	}
	return err
}

func (r *sessionRepository) ListForLearner(ctx context.Context, learnerID int64, since time.Time) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var out []models.PracticeSession
	q := sqlBuilder.Select(sessionColumns...).From("practice_sessions").
		Where(squirrel.Eq{"learner_id": learnerID}).
		Where(squirrel.GtOrEq{"started_at": utc(since)}).
		OrderBy("started_at DESC", "id DESC")
	if err := selectInto(ctx, r.db, &out, q); err != nil {
		log.Error("failed to list sessions: learner_id=%d: %v", learnerID, err)
		return nil, err
	}
	log.Debug("loaded %d sessions for learner_id=%d", len(out), learnerID)
	return out, nil
}

func (r *sessionRepository) ListSince(ctx context.Context, since time.Time) (map[int64][]models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var all []models.PracticeSession
	q := sqlBuilder.Select(sessionColumns...).From("practice_sessions").
		Where(squirrel.GtOrEq{"started_at": utc(since)}).
		OrderBy("learner_id", "started_at DESC", "id DESC")
	if err := selectInto(ctx, r.db, &all, q); err != nil {
		log.Error("failed to list sessions since %s: %v", since.Format(time.RFC3339), err)
		return nil, err
	}
	out := make(map[int64][]models.PracticeSession)
	for _, s := range all {
		out[s.LearnerID] = append(out[s.LearnerID], s)
	}
	log.Debug("loaded %d sessions for %d learners", len(all), len(out))
	return out, nil
}

func (r *sessionRepository) ListOpenIdleSince(ctx context.Context, cutoff time.Time) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var out []models.PracticeSession
	q := sqlBuilder.Select(sessionColumns...).From("practice_sessions").
		Where(squirrel.Eq{"ended_at": nil}).
		Where(squirrel.Lt{"COALESCE(last_activity_at, started_at)": utc(cutoff)}).
		OrderBy("id")
	if err := selectInto(ctx, r.db, &out, q); err != nil {
		log.Error("failed to list idle sessions: %v", err)
		return nil, err
	}
	log.Debug("found %d idle open sessions", len(out))
	return out, nil
}
