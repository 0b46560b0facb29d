package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/grading"
	"github.com/vytor/vokabox/internal/leitner"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
	"github.com/vytor/vokabox/internal/selection"
	"github.com/vytor/vokabox/internal/sessions"
)

// MaxAnswerLength bounds a submitted answer in bytes.
const MaxAnswerLength = 500

// TrainingService handles a learner's practice visit: building the queue,
// grading answers and keeping the session counters.
type TrainingService interface {
	StartSession(ctx context.Context, learnerID int64) (*models.SessionStart, error)
	Queue(ctx context.Context, learnerID int64) (*models.SessionQueue, error)
	// SubmitAnswer grades one answer. sessionID may be 0 when the answer is
	// not tied to a tracked visit.
	SubmitAnswer(ctx context.Context, learnerID, sessionID, progressID int64, answer string) (*models.AnswerOutcome, error)
	EndSession(ctx context.Context, learnerID, sessionID int64) (*models.PracticeSession, error)
	// SweepStaleSessions closes open sessions idle for longer than the
	// configured limit and returns how many were closed.
	SweepStaleSessions(ctx context.Context) (int, error)
}

// TrainingConfig carries the scheduling settings. A nil Now uses time.Now
// and a nil Location uses UTC.
type TrainingConfig struct {
	Policy     selection.Policy
	StaleAfter time.Duration
	Location   *time.Location
	Now        func() time.Time
}

type trainingService struct {
	vocabRepo    repository.VocabularyRepository
	progressRepo repository.ProgressRepository
	sessionRepo  repository.SessionRepository
	cfg          TrainingConfig
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(
	vocabRepo repository.VocabularyRepository,
	progressRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
	cfg TrainingConfig,
) TrainingService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &trainingService{
		vocabRepo:    vocabRepo,
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
		cfg:          cfg,
	}
}

func (s *trainingService) today() calendar.Date {
	return calendar.Today(s.cfg.Now, s.cfg.Location)
}

func (s *trainingService) StartSession(ctx context.Context, learnerID int64) (*models.SessionStart, error) {
	log := logger.FromContext(ctx).WithField("learner_id", learnerID)
	log.Debug("starting session")

	queue, err := s.Queue(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	session := models.PracticeSession{LearnerID: learnerID, StartedAt: s.cfg.Now().UTC()}
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		log.Error("failed to create session: %v", err)
		return nil, errors.NewStoreError("save session", err)
	}
	session.ID = id

	log.Info("session %d started with %d items", id, len(queue.Items))
	return &models.SessionStart{Session: session, Queue: *queue}, nil
}

func (s *trainingService) Queue(ctx context.Context, learnerID int64) (*models.SessionQueue, error) {
	log := logger.FromContext(ctx).WithField("learner_id", learnerID)
	today := s.today()

	records, err := s.ensureProgress(ctx, learnerID, today)
	if err != nil {
		return nil, err
	}

	plan := selection.Select(records, today, s.cfg.Policy)
	queue := &models.SessionQueue{
		Today:    today,
		Items:    []models.WorkItem{},
		Counters: selection.Counters(records, today, s.cfg.Policy.DailyNewQuota),
	}
	if plan.Empty() {
		log.Debug("nothing due on %s", today)
		queue.NothingDue = true
		return queue, nil
	}

	picked := plan.Queue()
	ids := make([]int64, 0, len(picked))
	for _, r := range picked {
		ids = append(ids, r.VocabID)
	}
	vocab, err := s.vocabRepo.GetMany(ctx, ids)
	if err != nil {
		log.Error("failed to load vocabulary for queue: %v", err)
		return nil, errors.NewStoreError("load vocabulary", err)
	}

	for i, r := range picked {
		item, ok := vocab[r.VocabID]
		if !ok {
			log.Warn("progress %d points at missing vocab %d, skipping", r.ID, r.VocabID)
			continue
		}
		review := i < len(plan.Reviews)
		queue.Items = append(queue.Items, models.WorkItem{
			ProgressID:    r.ID,
			VocabID:       r.VocabID,
			Prompt:        item.Prompt,
			IsIdiom:       item.IsIdiom,
			Stage:         leitner.Clamp(r.Stage),
			DueDate:       r.DueDate,
			FirstSeenDate: r.FirstSeenDate,
			CorrectCount:  r.CorrectCount,
			WrongCount:    r.WrongCount,
			IsReview:      review,
		})
		if review {
			queue.Reviews++
		} else {
			queue.NewItems++
		}
	}
	queue.NothingDue = len(queue.Items) == 0

	log.Debug("queue built: reviews=%d, new=%d", queue.Reviews, queue.NewItems)
	return queue, nil
}

// ensureProgress loads the learner's records, first creating stage-0 records
// for vocabulary the learner has none for yet.
func (s *trainingService) ensureProgress(ctx context.Context, learnerID int64, today calendar.Date) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithField("learner_id", learnerID)

	have, err := s.progressRepo.CountForLearner(ctx, learnerID)
	if err != nil {
		log.WithError(err).Error("failed to count progress")
		return nil, errors.NewStoreError("load progress", err)
	}
	total, err := s.vocabRepo.Count(ctx)
	if err != nil {
		log.WithError(err).Error("failed to count vocabulary")
		return nil, errors.NewStoreError("load vocabulary", err)
	}
	if have < total {
		if err := s.topUpProgress(ctx, learnerID, today); err != nil {
			return nil, err
		}
	}

	records, err := s.progressRepo.ListForLearner(ctx, learnerID)
	if err != nil {
		log.WithError(err).Error("failed to load progress")
		return nil, errors.NewStoreError("load progress", err)
	}
	return records, nil
}

// topUpProgress inserts records for items the learner has none for. Items
// added later are scheduled after the learner's pending new items.
func (s *trainingService) topUpProgress(ctx context.Context, learnerID int64, today calendar.Date) error {
	log := logger.FromContext(ctx).WithField("learner_id", learnerID)

	records, err := s.progressRepo.ListForLearner(ctx, learnerID)
	if err != nil {
		log.WithError(err).Error("failed to load progress")
		return errors.NewStoreError("load progress", err)
	}
	items, err := s.vocabRepo.List(ctx)
	if err != nil {
		log.WithError(err).Error("failed to list vocabulary")
		return errors.NewStoreError("load vocabulary", err)
	}

	known := make(map[int64]bool, len(records))
	start := today
	for _, r := range records {
		known[r.VocabID] = true
		if r.IsNew() && r.DueDate.After(start) {
			start = r.DueDate
		}
	}
	var missing []models.VocabularyItem
	for _, item := range items {
		if !known[item.ID] {
			missing = append(missing, item)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	planned := selection.PlanInitialProgress(learnerID, missing, start, s.cfg.Policy.DailyNewQuota)
	log.Info("materializing %d progress records starting %s", len(planned), start)
	if err := s.progressRepo.InsertBatch(ctx, planned); err != nil {
		log.WithError(err).Error("failed to insert progress")
		return errors.NewStoreError("save progress", err)
	}
	return nil
}

func (s *trainingService) SubmitAnswer(ctx context.Context, learnerID, sessionID, progressID int64, answer string) (*models.AnswerOutcome, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"learner_id":  learnerID,
		"progress_id": progressID,
	})
	log.Debug("grading answer")

	if len(answer) > MaxAnswerLength {
		return nil, errors.NewValidationError("answer", "is too long")
	}

	rec, err := s.progressRepo.Get(ctx, progressID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewStoreError("load progress", err)
	}
	if rec == nil || rec.LearnerID != learnerID {
		return nil, errors.NewNotFoundError("progress", progressID)
	}

	item, err := s.vocabRepo.Get(ctx, rec.VocabID)
	if err != nil {
		log.Error("failed to load vocabulary: %v", err)
		return nil, errors.NewStoreError("load vocabulary", err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("vocabulary item", rec.VocabID)
	}

	var session *models.PracticeSession
	if sessionID != 0 {
		session, err = s.ownedSession(ctx, learnerID, sessionID)
		if err != nil {
			return nil, err
		}
	}

	now := s.cfg.Now()
	today := calendar.DateOf(now, s.cfg.Location)
	result := grading.Evaluate(answer, item.AcceptedAnswers)
	updated := leitner.ApplyAnswer(*rec, result.Correct, today)
	if err := s.progressRepo.Update(ctx, updated); err != nil {
		log.Error("failed to save progress: %v", err)
		return nil, errors.NewStoreError("save progress", err)
	}
	log.Info("answer graded: correct=%t, match=%s, stage %d -> %d", result.Correct, result.Match, rec.Stage, updated.Stage)

	outcome := &models.AnswerOutcome{
		Correct:        result.Correct,
		Match:          string(result.Match),
		Solution:       result.Shown,
		OtherSolutions: result.Others(),
		Stage:          updated.Stage,
		DueDate:        updated.DueDate,
	}

	if session != nil {
		if session.Open() {
			recorded := sessions.Record(*session, result.Correct, now.UTC())
			if err := s.sessionRepo.Update(ctx, recorded); err != nil {
				log.Error("failed to save session %d: %v", session.ID, err)
				return nil, errors.NewStoreError("save session", err)
			}
			session = &recorded
		} else {
			log.Warn("answer submitted to closed session %d, counters unchanged", session.ID)
		}
		outcome.SessionAnswered = session.CardsAnswered
	}

	records, err := s.progressRepo.ListForLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to reload progress: %v", err)
		return nil, errors.NewStoreError("load progress", err)
	}
	outcome.Counters = selection.Counters(records, today, s.cfg.Policy.DailyNewQuota)
	return outcome, nil
}

func (s *trainingService) EndSession(ctx context.Context, learnerID, sessionID int64) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"learner_id": learnerID,
		"session_id": sessionID,
	})

	session, err := s.ownedSession(ctx, learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Open() {
		log.Debug("session already closed")
		return session, nil
	}

	closed := sessions.Close(*session, s.cfg.Now().UTC())
	if err := s.sessionRepo.Update(ctx, closed); err != nil {
		log.Error("failed to close session: %v", err)
		return nil, errors.NewStoreError("save session", err)
	}
	log.Info("session closed after %ds, %d cards", closed.Seconds(), closed.CardsAnswered)
	return &closed, nil
}

func (s *trainingService) ownedSession(ctx context.Context, learnerID, sessionID int64) (*models.PracticeSession, error) {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load session %d: %v", sessionID, err)
		return nil, errors.NewStoreError("load session", err)
	}
	if session == nil || session.LearnerID != learnerID {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return session, nil
}

func (s *trainingService) SweepStaleSessions(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("sweeper")
	now := s.cfg.Now()
	cutoff := now.Add(-s.cfg.StaleAfter)

	stale, err := s.sessionRepo.ListOpenIdleSince(ctx, cutoff)
	if err != nil {
		log.Error("failed to list idle sessions: %v", err)
		return 0, errors.NewStoreError("load sessions", err)
	}

	closed := 0
	var failures []error
	for _, session := range stale {
		if !sessions.IsStale(session, now, s.cfg.StaleAfter) {
			continue
		}
		ended := sessions.CloseAt(session, sessions.IdleEnd(session))
		if err := s.sessionRepo.Update(ctx, ended); err != nil {
			log.Warn("failed to close stale session %d: %v", session.ID, err)
			failures = append(failures, err)
			continue
		}
		closed++
	}
	if len(failures) > 0 {
		return closed, errors.NewStoreError("save sessions", stderrors.Join(failures...))
	}
	if closed > 0 {
		log.Info("closed %d stale sessions", closed)
	}
	return closed, nil
}
