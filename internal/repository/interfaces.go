package repository

import (
	"context"
	"time"

	"github.com/vytor/vokabox/internal/models"
)

// LearnerRepository handles learner accounts and the admin list.
type LearnerRepository interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	GetByUsername(ctx context.Context, username string) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Upsert(ctx context.Context, learner models.Learner) (*models.Learner, error)
	IsAdmin(ctx context.Context, learnerID int64) (bool, error)
	SetAdmin(ctx context.Context, learnerID int64, admin bool) error
}

// VocabularyRepository handles the shared vocabulary list.
type VocabularyRepository interface {
	Get(ctx context.Context, id int64) (*models.VocabularyItem, error)
	// GetMany returns the items with the given ids keyed by id.
	GetMany(ctx context.Context, ids []int64) (map[int64]models.VocabularyItem, error)
	List(ctx context.Context) ([]models.VocabularyItem, error)
	Count(ctx context.Context) (int, error)
	// UpsertBatch inserts new prompts and updates existing ones, returning
	// how many rows were newly created.
	UpsertBatch(ctx context.Context, items []models.VocabularyItem) (int, error)
}

// ProgressRepository handles per-learner progress records.
type ProgressRepository interface {
	Get(ctx context.Context, id int64) (*models.ProgressRecord, error)
	ListForLearner(ctx context.Context, learnerID int64) ([]models.ProgressRecord, error)
	CountForLearner(ctx context.Context, learnerID int64) (int, error)
	// ListForLearners reads the records of many learners in one query,
	// keyed by learner id.
	ListForLearners(ctx context.Context, learnerIDs []int64) (map[int64][]models.ProgressRecord, error)
	InsertBatch(ctx context.Context, records []models.ProgressRecord) error
	Update(ctx context.Context, record models.ProgressRecord) error
}

// SessionRepository handles practice sessions.
type SessionRepository interface {
	Create(ctx context.Context, session models.PracticeSession) (int64, error)
	Get(ctx context.Context, id int64) (*models.PracticeSession, error)
	Update(ctx context.Context, session models.PracticeSession) error
	// ListForLearner returns the learner's sessions started at or after
	// since, newest first.
	ListForLearner(ctx context.Context, learnerID int64, since time.Time) ([]models.PracticeSession, error)
	// ListSince returns sessions of all learners started at or after since,
	// keyed by learner id, newest first within each learner.
	ListSince(ctx context.Context, since time.Time) (map[int64][]models.PracticeSession, error)
	// ListOpenIdleSince returns open sessions whose last activity (or start)
	// is before cutoff.
	ListOpenIdleSince(ctx context.Context, cutoff time.Time) ([]models.PracticeSession, error)
}
