package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/selection"
	"github.com/vytor/vokabox/internal/services"
	"github.com/vytor/vokabox/internal/testutil/mocks"
)

var (
	fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	today    = calendar.MustParseDate("2024-06-01")
)

type trainingFixture struct {
	vocab    *mocks.MockVocabularyRepository
	progress *mocks.MockProgressRepository
	sessions *mocks.MockSessionRepository
	svc      services.TrainingService
}

func newTrainingFixture() *trainingFixture {
	f := &trainingFixture{
		vocab:    new(mocks.MockVocabularyRepository),
		progress: new(mocks.MockProgressRepository),
		sessions: new(mocks.MockSessionRepository),
	}
	f.svc = services.NewTrainingService(f.vocab, f.progress, f.sessions, services.TrainingConfig{
		Policy:     selection.Policy{SessionLimit: 20, DailyNewQuota: 25},
		StaleAfter: 30 * time.Minute,
		Location:   time.UTC,
		Now:        func() time.Time { return fixedNow },
	})
	return f
}

func (f *trainingFixture) assertExpectations(t *testing.T) {
	f.vocab.AssertExpectations(t)
	f.progress.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
}

func TestQueue_MaterializesProgressForNewLearner(t *testing.T) {
	f := newTrainingFixture()
	items := []models.VocabularyItem{
		{ID: 1, Prompt: "Hund", AcceptedAnswers: "dog"},
		{ID: 2, Prompt: "Katze", AcceptedAnswers: "cat"},
		{ID: 3, Prompt: "ins Gras beißen", AcceptedAnswers: "bite the dust", IsIdiom: true},
	}
	stored := []models.ProgressRecord{
		{ID: 11, LearnerID: 7, VocabID: 1, DueDate: today},
		{ID: 12, LearnerID: 7, VocabID: 2, DueDate: today},
		{ID: 13, LearnerID: 7, VocabID: 3, DueDate: today},
	}

	f.progress.On("CountForLearner", mock.Anything, int64(7)).Return(0, nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return([]models.ProgressRecord{}, nil).Once()
	f.vocab.On("Count", mock.Anything).Return(3, nil)
	f.vocab.On("List", mock.Anything).Return(items, nil)
	f.progress.On("InsertBatch", mock.Anything, mock.MatchedBy(func(recs []models.ProgressRecord) bool {
		return len(recs) == 3 && recs[0].LearnerID == 7 && recs[0].DueDate == today
	})).Return(nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return(stored, nil).Once()
	f.vocab.On("GetMany", mock.Anything, []int64{1, 2, 3}).Return(map[int64]models.VocabularyItem{
		1: items[0], 2: items[1], 3: items[2],
	}, nil)

	queue, err := f.svc.Queue(context.Background(), 7)

	require.NoError(t, err)
	assert.False(t, queue.NothingDue)
	assert.Equal(t, 3, queue.NewItems)
	assert.Equal(t, 0, queue.Reviews)
	require.Len(t, queue.Items, 3)
	assert.Equal(t, "Hund", queue.Items[0].Prompt)
	assert.True(t, queue.Items[2].IsIdiom)
	assert.Equal(t, 3, queue.Counters.Total)
	f.assertExpectations(t)
}

func TestQueue_TopUpContinuesAfterPendingNewItems(t *testing.T) {
	f := newTrainingFixture()
	dayN := today.AddDays(3)
	existing := []models.ProgressRecord{
		{ID: 11, LearnerID: 7, VocabID: 1, Stage: 1, DueDate: today.AddDays(1), FirstSeenDate: today.AddDays(-1).Ptr()},
		{ID: 12, LearnerID: 7, VocabID: 2, DueDate: today},
		{ID: 13, LearnerID: 7, VocabID: 3, DueDate: dayN},
	}
	items := []models.VocabularyItem{
		{ID: 1, Prompt: "Hund", AcceptedAnswers: "dog"},
		{ID: 2, Prompt: "Katze", AcceptedAnswers: "cat"},
		{ID: 3, Prompt: "Maus", AcceptedAnswers: "mouse"},
		{ID: 4, Prompt: "Vogel", AcceptedAnswers: "bird"},
		{ID: 5, Prompt: "Fisch", AcceptedAnswers: "fish"},
	}
	var inserted []models.ProgressRecord

	f.progress.On("CountForLearner", mock.Anything, int64(7)).Return(3, nil)
	f.vocab.On("Count", mock.Anything).Return(5, nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return(existing, nil).Once()
	f.vocab.On("List", mock.Anything).Return(items, nil)
	f.progress.On("InsertBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]models.ProgressRecord)
	})
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return(existing, nil).Once()
	f.vocab.On("GetMany", mock.Anything, []int64{2, 3}).Return(map[int64]models.VocabularyItem{2: items[1], 3: items[2]}, nil)

	_, err := f.svc.Queue(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.Equal(t, int64(4), inserted[0].VocabID)
	assert.Equal(t, int64(5), inserted[1].VocabID)
	for _, r := range inserted {
		assert.Equal(t, int64(7), r.LearnerID)
		assert.Equal(t, 0, r.Stage)
		assert.Nil(t, r.FirstSeenDate)
		assert.Equal(t, dayN, r.DueDate, "new items start where the pending ones end")
	}
	f.assertExpectations(t)
}

func TestQueue_NothingDueIsNotAnError(t *testing.T) {
	f := newTrainingFixture()
	records := []models.ProgressRecord{
		{ID: 1, LearnerID: 7, VocabID: 1, Stage: 2, DueDate: today.AddDays(3), FirstSeenDate: today.AddDays(-5).Ptr()},
	}
	f.progress.On("CountForLearner", mock.Anything, int64(7)).Return(1, nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return(records, nil)
	f.vocab.On("Count", mock.Anything).Return(1, nil)

	queue, err := f.svc.Queue(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, queue.NothingDue)
	assert.Empty(t, queue.Items)
	f.vocab.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
}

func TestQueue_StoreFailureIsDistinguishable(t *testing.T) {
	f := newTrainingFixture()
	f.progress.On("CountForLearner", mock.Anything, int64(7)).Return(0, stderrors.New("disk I/O error"))

	_, err := f.svc.Queue(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStore))
}

func TestQueue_ReviewsBeforeNewItems(t *testing.T) {
	f := newTrainingFixture()
	records := []models.ProgressRecord{
		{ID: 1, LearnerID: 7, VocabID: 1, DueDate: today},
		{ID: 2, LearnerID: 7, VocabID: 2, Stage: 1, DueDate: today.AddDays(-1), FirstSeenDate: today.AddDays(-3).Ptr()},
	}
	f.progress.On("CountForLearner", mock.Anything, int64(7)).Return(2, nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return(records, nil)
	f.vocab.On("Count", mock.Anything).Return(2, nil)
	f.vocab.On("GetMany", mock.Anything, []int64{2, 1}).Return(map[int64]models.VocabularyItem{
		1: {ID: 1, Prompt: "Hund"},
		2: {ID: 2, Prompt: "Katze"},
	}, nil)

	queue, err := f.svc.Queue(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, queue.Items, 2)
	assert.True(t, queue.Items[0].IsReview)
	assert.Equal(t, "Katze", queue.Items[0].Prompt)
	assert.False(t, queue.Items[1].IsReview)
}

func TestStartSession(t *testing.T) {
	f := newTrainingFixture()
	f.progress.On("CountForLearner", mock.Anything, int64(7)).Return(0, nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return([]models.ProgressRecord{}, nil)
	f.vocab.On("Count", mock.Anything).Return(0, nil)
	f.sessions.On("Create", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool {
		return s.LearnerID == 7 && s.StartedAt.Equal(fixedNow) && s.Open()
	})).Return(int64(99), nil)

	start, err := f.svc.StartSession(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(99), start.Session.ID)
	assert.True(t, start.Queue.NothingDue)
	f.assertExpectations(t)
}

func TestSubmitAnswer_CorrectAdvancesAndRecords(t *testing.T) {
	f := newTrainingFixture()
	rec := models.ProgressRecord{ID: 5, LearnerID: 7, VocabID: 3, Stage: 2, DueDate: today, FirstSeenDate: today.AddDays(-10).Ptr()}
	session := models.PracticeSession{ID: 40, LearnerID: 7, StartedAt: fixedNow.Add(-5 * time.Minute), CardsAnswered: 2, CorrectAnswers: 2}

	f.progress.On("Get", mock.Anything, int64(5)).Return(&rec, nil)
	f.vocab.On("Get", mock.Anything, int64(3)).Return(&models.VocabularyItem{ID: 3, AcceptedAnswers: "I'm happy;I am glad"}, nil)
	f.sessions.On("Get", mock.Anything, int64(40)).Return(&session, nil)
	f.progress.On("Update", mock.Anything, mock.MatchedBy(func(r models.ProgressRecord) bool {
		return r.ID == 5 && r.Stage == 3 && r.DueDate.String() == "2024-07-01" && r.CorrectCount == 1
	})).Return(nil)
	f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool {
		return s.ID == 40 && s.CardsAnswered == 3 && s.CorrectAnswers == 3 && s.LastActivityAt != nil
	})).Return(nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return([]models.ProgressRecord{{ID: 5, Stage: 3, DueDate: today.AddDays(30)}}, nil)

	outcome, err := f.svc.SubmitAnswer(context.Background(), 7, 40, 5, "I’m happy")

	require.NoError(t, err)
	assert.True(t, outcome.Correct)
	assert.Equal(t, "exact", outcome.Match)
	assert.Equal(t, "I'm happy", outcome.Solution)
	assert.Equal(t, []string{"I am glad"}, outcome.OtherSolutions)
	assert.Equal(t, 3, outcome.Stage)
	assert.Equal(t, "2024-07-01", outcome.DueDate.String())
	assert.Equal(t, 3, outcome.SessionAnswered)
	assert.Equal(t, 1, outcome.Counters.Learned)
	f.assertExpectations(t)
}

func TestSubmitAnswer_WrongResetsWithoutSession(t *testing.T) {
	f := newTrainingFixture()
	rec := models.ProgressRecord{ID: 5, LearnerID: 7, VocabID: 3, Stage: 3, DueDate: today}

	f.progress.On("Get", mock.Anything, int64(5)).Return(&rec, nil)
	f.vocab.On("Get", mock.Anything, int64(3)).Return(&models.VocabularyItem{ID: 3, AcceptedAnswers: "dog"}, nil)
	f.progress.On("Update", mock.Anything, mock.MatchedBy(func(r models.ProgressRecord) bool {
		return r.Stage == 0 && r.DueDate.String() == "2024-06-02" && r.WrongCount == 1 && r.FirstSeenDate != nil
	})).Return(nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return([]models.ProgressRecord{}, nil)

	outcome, err := f.svc.SubmitAnswer(context.Background(), 7, 0, 5, "cat")

	require.NoError(t, err)
	assert.False(t, outcome.Correct)
	assert.Equal(t, "dog", outcome.Solution)
	assert.Equal(t, 0, outcome.SessionAnswered)
	f.sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSubmitAnswer_FuzzyMatchShowsSolution(t *testing.T) {
	f := newTrainingFixture()
	rec := models.ProgressRecord{ID: 5, LearnerID: 7, VocabID: 3, DueDate: today}

	f.progress.On("Get", mock.Anything, int64(5)).Return(&rec, nil)
	f.vocab.On("Get", mock.Anything, int64(3)).Return(&models.VocabularyItem{ID: 3, AcceptedAnswers: "elephant"}, nil)
	f.progress.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("ListForLearner", mock.Anything, int64(7)).Return([]models.ProgressRecord{}, nil)

	outcome, err := f.svc.SubmitAnswer(context.Background(), 7, 0, 5, "elefant")
	require.NoError(t, err)
	assert.False(t, outcome.Correct, "two edits away")

	outcome, err = f.svc.SubmitAnswer(context.Background(), 7, 0, 5, "elephnt")
	require.NoError(t, err)
	assert.True(t, outcome.Correct)
	assert.Equal(t, "fuzzy", outcome.Match)
	assert.Equal(t, "elephant", outcome.Solution)
}

func TestSubmitAnswer_OtherLearnersProgressIsNotFound(t *testing.T) {
	f := newTrainingFixture()
	f.progress.On("Get", mock.Anything, int64(5)).Return(&models.ProgressRecord{ID: 5, LearnerID: 8}, nil)

	_, err := f.svc.SubmitAnswer(context.Background(), 7, 0, 5, "dog")

	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	f.progress.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitAnswer_OtherLearnersSessionIsNotFound(t *testing.T) {
	f := newTrainingFixture()
	f.progress.On("Get", mock.Anything, int64(5)).Return(&models.ProgressRecord{ID: 5, LearnerID: 7, VocabID: 3}, nil)
	f.vocab.On("Get", mock.Anything, int64(3)).Return(&models.VocabularyItem{ID: 3, AcceptedAnswers: "dog"}, nil)
	f.sessions.On("Get", mock.Anything, int64(40)).Return(&models.PracticeSession{ID: 40, LearnerID: 8}, nil)

	_, err := f.svc.SubmitAnswer(context.Background(), 7, 40, 5, "dog")

	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	f.progress.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitAnswer_TooLong(t *testing.T) {
	f := newTrainingFixture()
	long := make([]byte, services.MaxAnswerLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := f.svc.SubmitAnswer(context.Background(), 7, 0, 5, string(long))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestSubmitAnswer_SaveFailure(t *testing.T) {
	f := newTrainingFixture()
	f.progress.On("Get", mock.Anything, int64(5)).Return(&models.ProgressRecord{ID: 5, LearnerID: 7, VocabID: 3}, nil)
	f.vocab.On("Get", mock.Anything, int64(3)).Return(&models.VocabularyItem{ID: 3, AcceptedAnswers: "dog"}, nil)
	f.progress.On("Update", mock.Anything, mock.Anything).Return(stderrors.New("database is locked"))

	_, err := f.svc.SubmitAnswer(context.Background(), 7, 0, 5, "dog")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStore))
	assert.Contains(t, err.Error(), "cannot save progress")
}

func TestEndSession(t *testing.T) {
	f := newTrainingFixture()
	open := models.PracticeSession{ID: 40, LearnerID: 7, StartedAt: fixedNow.Add(-10 * time.Minute)}
	f.sessions.On("Get", mock.Anything, int64(40)).Return(&open, nil)
	f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool {
		return !s.Open() && s.Seconds() == 600
	})).Return(nil)

	closed, err := f.svc.EndSession(context.Background(), 7, 40)

	require.NoError(t, err)
	assert.Equal(t, 600, closed.Seconds())
	f.assertExpectations(t)
}

func TestEndSession_AlreadyClosed(t *testing.T) {
	f := newTrainingFixture()
	end := fixedNow.Add(-time.Hour)
	secs := 120
	done := models.PracticeSession{ID: 40, LearnerID: 7, StartedAt: end.Add(-2 * time.Minute), EndedAt: &end, DurationSeconds: &secs}
	f.sessions.On("Get", mock.Anything, int64(40)).Return(&done, nil)

	got, err := f.svc.EndSession(context.Background(), 7, 40)

	require.NoError(t, err)
	assert.Equal(t, 120, got.Seconds())
	f.sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSweepStaleSessions(t *testing.T) {
	f := newTrainingFixture()
	last := fixedNow.Add(-45 * time.Minute)
	stale := []models.PracticeSession{
		{ID: 1, LearnerID: 7, StartedAt: fixedNow.Add(-time.Hour), LastActivityAt: &last},
		{ID: 2, LearnerID: 8, StartedAt: fixedNow.Add(-2 * time.Hour)},
	}
	f.sessions.On("ListOpenIdleSince", mock.Anything, fixedNow.Add(-30*time.Minute)).Return(stale, nil)
	f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool {
		return s.ID == 1 && s.Seconds() == 15*60 && s.EndedAt.Equal(last)
	})).Return(nil)
	f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool {
		return s.ID == 2 && s.Seconds() == 0
	})).Return(nil)

	closed, err := f.svc.SweepStaleSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	f.assertExpectations(t)
}

func TestSweepStaleSessions_PartialFailure(t *testing.T) {
	f := newTrainingFixture()
	stale := []models.PracticeSession{
		{ID: 1, StartedAt: fixedNow.Add(-time.Hour)},
		{ID: 2, StartedAt: fixedNow.Add(-time.Hour)},
	}
	f.sessions.On("ListOpenIdleSince", mock.Anything, mock.Anything).Return(stale, nil)
	f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool { return s.ID == 1 })).Return(stderrors.New("locked"))
	f.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.PracticeSession) bool { return s.ID == 2 })).Return(nil)

	closed, err := f.svc.SweepStaleSessions(context.Background())

	assert.Equal(t, 1, closed)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStore))
}
