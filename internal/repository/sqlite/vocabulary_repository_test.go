package sqlite_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
	"github.com/vytor/vokabox/internal/repository/sqlite"
	"github.com/vytor/vokabox/internal/testutil"
)

type VocabularyRepositorySuite struct {
	suite.Suite
	db   *sqlx.DB
	repo repository.VocabularyRepository
}

func (s *VocabularyRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewVocabularyRepository(s.db)
}

func (s *VocabularyRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func lessonDay(n int) *int { return &n }

func (s *VocabularyRepositorySuite) TestUpsertBatch() {
	ctx := context.Background()

	created, err := s.repo.UpsertBatch(ctx, []models.VocabularyItem{
		{Prompt: "laufen", AcceptedAnswers: "run;jog", LessonDay: lessonDay(2)},
		{Prompt: "Hund", AcceptedAnswers: "dog", LessonDay: lessonDay(1)},
		{Prompt: "ins Gras beißen", AcceptedAnswers: "bite the dust", IsIdiom: true},
	})
	s.Require().NoError(err)
	s.Equal(3, created)

	created, err = s.repo.UpsertBatch(ctx, []models.VocabularyItem{
		{Prompt: "laufen", AcceptedAnswers: "run;jog;sprint", LessonDay: lessonDay(2)},
		{Prompt: "Katze", AcceptedAnswers: "cat", LessonDay: lessonDay(1)},
	})
	s.Require().NoError(err)
	s.Equal(1, created)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(4, count)

	items, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 4)
	s.Equal("Hund", items[0].Prompt)
	s.Equal("Katze", items[1].Prompt)
	s.Equal("laufen", items[2].Prompt)
	s.Equal("run;jog;sprint", items[2].AcceptedAnswers)
	s.Equal("ins Gras beißen", items[3].Prompt)
	s.True(items[3].IsIdiom)
	s.Nil(items[3].LessonDay)
}

func (s *VocabularyRepositorySuite) TestGetAndGetMany() {
	ctx := context.Background()
	dog := testutil.SeedVocab(s.T(), s.db, "Hund", "dog")
	cat := testutil.SeedVocab(s.T(), s.db, "Katze", "cat")

	item, err := s.repo.Get(ctx, dog)
	s.Require().NoError(err)
	s.Equal("dog", item.AcceptedAnswers)

	missing, err := s.repo.Get(ctx, 999)
	s.NoError(err)
	s.Nil(missing)

	byID, err := s.repo.GetMany(ctx, []int64{dog, cat, 999})
	s.Require().NoError(err)
	s.Len(byID, 2)
	s.Equal("Katze", byID[cat].Prompt)

	empty, err := s.repo.GetMany(ctx, nil)
	s.NoError(err)
	s.Empty(empty)
}

func TestVocabularyRepositorySuite(t *testing.T) {
	suite.Run(t, new(VocabularyRepositorySuite))
}
