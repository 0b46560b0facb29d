package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vokabox/internal/activity"
	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/models"
)

var now = time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func closed(start time.Time, seconds, cards, correct int) models.PracticeSession {
	end := start.Add(time.Duration(seconds) * time.Second)
	return models.PracticeSession{
		StartedAt:       start,
		EndedAt:         &end,
		LastActivityAt:  &end,
		DurationSeconds: ptr(seconds),
		CardsAnswered:   cards,
		CorrectAnswers:  correct,
		WrongAnswers:    cards - correct,
	}
}

func TestAggregate_WindowScenario(t *testing.T) {
	var sessions []models.PracticeSession
	for i := 0; i < 30; i++ {
		day := i % 5
		start := now.Add(-time.Duration(day)*24*time.Hour - time.Duration(i)*time.Minute)
		sessions = append(sessions, closed(start, 600, 10, 7))
	}

	summary := activity.Aggregate(sessions, now, time.UTC, 7)

	assert.Equal(t, 30*10, summary.MinutesInWindow)
	assert.Equal(t, 5, summary.DaysPracticedInWindow)
	require.Len(t, summary.Days, 5)
	assert.Equal(t, "2024-06-10", summary.Days[0].Date.String())
	assert.Equal(t, "2024-06-06", summary.Days[4].Date.String())
	assert.Equal(t, 6*600, summary.Days[0].Seconds)
	assert.Equal(t, 60, summary.Days[0].Cards)
	assert.Equal(t, 42, summary.Days[0].Correct)
	assert.Equal(t, 18, summary.Days[0].Wrong)
}

func TestAggregate_WindowExcludesOlderSessions(t *testing.T) {
	sessions := []models.PracticeSession{
		closed(now.Add(-1*time.Hour), 90, 1, 1),
		closed(now.Add(-8*24*time.Hour), 600, 5, 5),
	}

	summary := activity.Aggregate(sessions, now, time.UTC, 7)

	assert.Equal(t, 2, summary.MinutesInWindow, "90 seconds rounds to 2 minutes")
	assert.Equal(t, 1, summary.DaysPracticedInWindow)
	assert.Len(t, summary.Days, 2, "per-day rollups cover the whole input")
}

func TestAggregate_LastPracticeAt(t *testing.T) {
	older := closed(now.Add(-48*time.Hour), 60, 1, 1)
	newer := models.PracticeSession{StartedAt: now.Add(-time.Hour), LastActivityAt: ptr(now.Add(-30 * time.Minute))}

	summary := activity.Aggregate([]models.PracticeSession{older, newer}, now, time.UTC, 7)
	require.NotNil(t, summary.LastPracticeAt)
	assert.Equal(t, now.Add(-30*time.Minute), *summary.LastPracticeAt)

	summary = activity.Aggregate([]models.PracticeSession{newer, older}, now, time.UTC, 7)
	assert.Equal(t, now.Add(-30*time.Minute), *summary.LastPracticeAt)
}

func TestAggregate_ToleratesPartialRecords(t *testing.T) {
	sessions := []models.PracticeSession{
		{},
		{StartedAt: now.Add(-time.Hour)},
		{LastActivityAt: ptr(now.Add(-2 * time.Hour)), CardsAnswered: 3, CorrectAnswers: 2, WrongAnswers: 1},
		{StartedAt: now.Add(-3 * time.Hour), DurationSeconds: ptr(-40)},
	}

	summary := activity.Aggregate(sessions, now, time.UTC, 7)

	require.Len(t, summary.Days, 1)
	assert.Equal(t, 0, summary.Days[0].Seconds)
	assert.Equal(t, 3, summary.Days[0].Cards)
	assert.Equal(t, 0, summary.MinutesInWindow)
	assert.Equal(t, 1, summary.DaysPracticedInWindow)
}

func TestAggregate_Empty(t *testing.T) {
	summary := activity.Aggregate(nil, now, time.UTC, 7)

	assert.Empty(t, summary.Days)
	assert.Nil(t, summary.LastPracticeAt)
	assert.Zero(t, summary.MinutesInWindow)
}

func TestGroupByDay_UsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	late := time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-09", activity.GroupByDay([]models.PracticeSession{closed(late, 60, 1, 1)}, time.UTC)[0].Date.String())
	assert.Equal(t, "2024-06-10", activity.GroupByDay([]models.PracticeSession{closed(late, 60, 1, 1)}, tokyo)[0].Date.String())
}

func TestMergeDays_MatchesSinglePass(t *testing.T) {
	var sessions []models.PracticeSession
	for i := 0; i < 17; i++ {
		start := now.Add(-time.Duration(i*7) * time.Hour)
		sessions = append(sessions, closed(start, 60*(i+1), i, i/2))
	}

	whole := activity.GroupByDay(sessions, time.UTC)

	for _, split := range []int{0, 1, 6, 16, 17} {
		left := activity.GroupByDay(sessions[:split], time.UTC)
		right := activity.GroupByDay(sessions[split:], time.UTC)
		assert.Equal(t, whole, activity.MergeDays(left, right), "split at %d", split)
		assert.Equal(t, whole, activity.MergeDays(right, left), "split at %d reversed", split)
	}

	a := activity.GroupByDay(sessions[:5], time.UTC)
	b := activity.GroupByDay(sessions[5:11], time.UTC)
	c := activity.GroupByDay(sessions[11:], time.UTC)
	assert.Equal(t, activity.MergeDays(activity.MergeDays(a, b), c), activity.MergeDays(a, activity.MergeDays(b, c)))
}

func TestMergeDays_SortedNewestFirst(t *testing.T) {
	a := []models.DailyActivity{{Date: calendar.MustParseDate("2024-06-01"), Seconds: 10}}
	b := []models.DailyActivity{
		{Date: calendar.MustParseDate("2024-06-03"), Seconds: 5},
		{Date: calendar.MustParseDate("2024-06-01"), Seconds: 1},
	}

	merged := activity.MergeDays(a, b)

	require.Len(t, merged, 2)
	assert.Equal(t, "2024-06-03", merged[0].Date.String())
	assert.Equal(t, 11, merged[1].Seconds)
}
