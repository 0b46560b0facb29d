package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/vokabox/internal/activity"
	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/leitner"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
)

// DashboardService builds the supervisor views.
type DashboardService interface {
	Overview(ctx context.Context) (*models.DashboardOverview, error)
	Learner(ctx context.Context, learnerID int64) (*models.LearnerDashboardRow, error)
}

// DashboardConfig carries the dashboard windows. A nil Now uses time.Now
// and a nil Location uses UTC.
type DashboardConfig struct {
	DailyNewQuota      int
	ActivityWindowDays int
	RollupWindowDays   int
	DashboardDays      int
	Location           *time.Location
	Now                func() time.Time
}

type dashboardService struct {
	learnerRepo  repository.LearnerRepository
	progressRepo repository.ProgressRepository
	sessionRepo  repository.SessionRepository
	cfg          DashboardConfig
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	learnerRepo repository.LearnerRepository,
	progressRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
	cfg DashboardConfig,
) DashboardService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &dashboardService{
		learnerRepo:  learnerRepo,
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
		cfg:          cfg,
	}
}

func (s *dashboardService) rowOptions(now time.Time) activity.RowOptions {
	return activity.RowOptions{
		Today:         calendar.DateOf(now, s.cfg.Location),
		Now:           now,
		Location:      s.cfg.Location,
		DailyNewQuota: s.cfg.DailyNewQuota,
		WindowDays:    s.cfg.ActivityWindowDays,
		DashboardDays: s.cfg.DashboardDays,
	}
}

func (s *dashboardService) rollupSince(now time.Time) time.Time {
	return now.Add(-time.Duration(s.cfg.RollupWindowDays) * 24 * time.Hour)
}

func (s *dashboardService) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	log := logger.FromContext(ctx).WithPrefix("dashboard")
	now := s.cfg.Now()
	opts := s.rowOptions(now)

	learners, err := s.learnerRepo.List(ctx)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, errors.NewStoreError("load learners", err)
	}
	ids := make([]int64, 0, len(learners))
	for _, l := range learners {
		ids = append(ids, l.ID)
	}

	progress, err := s.progressRepo.ListForLearners(ctx, ids)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewStoreError("load progress", err)
	}
	sessionsByLearner, err := s.sessionRepo.ListSince(ctx, s.rollupSince(now))
	if err != nil {
		log.Error("failed to load sessions: %v", err)
		return nil, errors.NewStoreError("load sessions", err)
	}

	overview := &models.DashboardOverview{
		Today:     opts.Today,
		NewPerDay: s.cfg.DailyNewQuota,
		Learners:  make([]models.LearnerDashboardRow, 0, len(learners)),
	}
	for _, l := range learners {
		overview.Learners = append(overview.Learners, buildRow(l, progress[l.ID], sessionsByLearner[l.ID], opts))
	}
	log.Debug("overview built for %d learners", len(learners))
	return overview, nil
}

func (s *dashboardService) Learner(ctx context.Context, learnerID int64) (*models.LearnerDashboardRow, error) {
	log := logger.FromContext(ctx).WithPrefix("dashboard").WithField("learner_id", learnerID)
	now := s.cfg.Now()

	learner, err := s.learnerRepo.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to load learner: %v", err)
		return nil, errors.NewStoreError("load learner", err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", learnerID)
	}
	records, err := s.progressRepo.ListForLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewStoreError("load progress", err)
	}
	history, err := s.sessionRepo.ListForLearner(ctx, learnerID, s.rollupSince(now))
	if err != nil {
		log.Error("failed to load sessions: %v", err)
		return nil, errors.NewStoreError("load sessions", err)
	}

	row := buildRow(*learner, records, history, s.rowOptions(now))
	return &row, nil
}

// buildRow flags records whose stage is out of range; they are left out of
// the histogram.
func buildRow(l models.Learner, records []models.ProgressRecord, history []models.PracticeSession, opts activity.RowOptions) models.LearnerDashboardRow {
	row := activity.BuildLearnerRow(l, records, history, opts)
	invalid := 0
	for _, r := range records {
		if r.Stage < 0 || r.Stage > leitner.MaxStage {
			invalid++
		}
	}
	if invalid > 0 {
		row.Error = fmt.Sprintf("%d progress records have an invalid stage", invalid)
	}
	return row
}
