package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/leitner"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
	"github.com/vytor/vokabox/internal/repository/sqlite"
	"github.com/vytor/vokabox/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db      *sqlx.DB
	repo    repository.ProgressRepository
	learner int64
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
	s.learner = testutil.SeedLearner(s.T(), s.db, "mia")
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) seedVocab(n int) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, testutil.SeedVocab(s.T(), s.db, fmt.Sprintf("wort %d", i), fmt.Sprintf("word %d", i)))
	}
	return ids
}

func (s *ProgressRepositorySuite) TestInsertBatch_ChunksAndIgnoresDuplicates() {
	ctx := context.Background()
	today := calendar.MustParseDate("2024-01-05")
	vocab := s.seedVocab(450)

	records := make([]models.ProgressRecord, 0, len(vocab))
	for i, id := range vocab {
		records = append(records, models.ProgressRecord{LearnerID: s.learner, VocabID: id, DueDate: today.AddDays(i / 25)})
	}
	s.Require().NoError(s.repo.InsertBatch(ctx, records))
	s.Require().NoError(s.repo.InsertBatch(ctx, records[:10]))

	count, err := s.repo.CountForLearner(ctx, s.learner)
	s.Require().NoError(err)
	s.Equal(450, count)

	listed, err := s.repo.ListForLearner(ctx, s.learner)
	s.Require().NoError(err)
	s.Require().Len(listed, 450)
	s.Equal(today, listed[0].DueDate)
	s.Equal(today.AddDays(17), listed[449].DueDate)
	s.Nil(listed[0].FirstSeenDate)
	s.Nil(listed[0].LastSeen)
}

func (s *ProgressRepositorySuite) TestUpdateRoundTripsDates() {
	ctx := context.Background()
	vocab := s.seedVocab(1)
	today := calendar.MustParseDate("2024-06-01")
	s.Require().NoError(s.repo.InsertBatch(ctx, []models.ProgressRecord{{LearnerID: s.learner, VocabID: vocab[0], Stage: 2, DueDate: today}}))

	listed, err := s.repo.ListForLearner(ctx, s.learner)
	s.Require().NoError(err)
	rec := leitner.ApplyAnswer(listed[0], true, today)
	s.Require().NoError(s.repo.Update(ctx, rec))

	got, err := s.repo.Get(ctx, rec.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(3, got.Stage)
	s.Equal("2024-07-01", got.DueDate.String())
	s.Require().NotNil(got.FirstSeenDate)
	s.Equal(today, *got.FirstSeenDate)
	s.Require().NotNil(got.LastSeen)
	s.Equal(today, *got.LastSeen)
	s.Equal(1, got.CorrectCount)
}

func (s *ProgressRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), 77)
	s.NoError(err)
	s.Nil(got)
}

func (s *ProgressRepositorySuite) TestListForLearners() {
	ctx := context.Background()
	other := testutil.SeedLearner(s.T(), s.db, "ben")
	quiet := testutil.SeedLearner(s.T(), s.db, "zoe")
	vocab := s.seedVocab(3)
	today := calendar.MustParseDate("2024-01-05")

	var records []models.ProgressRecord
	for _, id := range vocab {
		records = append(records,
			models.ProgressRecord{LearnerID: s.learner, VocabID: id, DueDate: today},
			models.ProgressRecord{LearnerID: other, VocabID: id, DueDate: today},
		)
	}
	s.Require().NoError(s.repo.InsertBatch(ctx, records))

	byLearner, err := s.repo.ListForLearners(ctx, []int64{s.learner, other, quiet})
	s.Require().NoError(err)
	s.Len(byLearner[s.learner], 3)
	s.Len(byLearner[other], 3)
	s.Empty(byLearner[quiet])

	empty, err := s.repo.ListForLearners(ctx, nil)
	s.NoError(err)
	s.Empty(empty)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
