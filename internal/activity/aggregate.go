// Package activity rolls practice sessions up into per-day and trailing
// window figures for the supervisor dashboard. Everything here is a pure
// function of its inputs.
package activity

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/models"
)

const DefaultWindowDays = 7

// dayKey returns the calendar day a session belongs to: the day of
// StartedAt, else of LastActivityAt. ok is false when neither is set.
func dayKey(s models.PracticeSession, loc *time.Location) (calendar.Date, bool) {
	if at, ok := anchor(s); ok {
		return calendar.DateOf(at, loc), true
	}
	return calendar.Date{}, false
}

func anchor(s models.PracticeSession) (time.Time, bool) {
	if !s.StartedAt.IsZero() {
		return s.StartedAt, true
	}
	if s.LastActivityAt != nil && !s.LastActivityAt.IsZero() {
		return *s.LastActivityAt, true
	}
	return time.Time{}, false
}

// lastTouched is the most recent timestamp recorded on s.
func lastTouched(s models.PracticeSession) (time.Time, bool) {
	switch {
	case s.LastActivityAt != nil && !s.LastActivityAt.IsZero():
		return *s.LastActivityAt, true
	case s.EndedAt != nil && !s.EndedAt.IsZero():
		return *s.EndedAt, true
	case !s.StartedAt.IsZero():
		return s.StartedAt, true
	}
	return time.Time{}, false
}

func nonNegative(n int) int { return max(n, 0) }

// GroupByDay sums sessions per calendar day in loc, newest day first.
// Sessions with no usable timestamp are skipped. Open sessions contribute
// their counters and zero seconds.
func GroupByDay(sessions []models.PracticeSession, loc *time.Location) []models.DailyActivity {
	byDay := make(map[calendar.Date]*models.DailyActivity)
	for _, s := range sessions {
		day, ok := dayKey(s, loc)
		if !ok {
			continue
		}
		row, ok := byDay[day]
		if !ok {
			row = &models.DailyActivity{Date: day}
			byDay[day] = row
		}
		row.Seconds += s.Seconds()
		row.Cards += nonNegative(s.CardsAnswered)
		row.Correct += nonNegative(s.CorrectAnswers)
		row.Wrong += nonNegative(s.WrongAnswers)
	}
	return flatten(byDay)
}

// MergeDays combines two per-day rollups, summing rows that share a date.
// Merging is associative and commutative, so rollups of disjoint session
// batches can be combined in any order.
func MergeDays(a, b []models.DailyActivity) []models.DailyActivity {
	byDay := make(map[calendar.Date]*models.DailyActivity, len(a)+len(b))
	for _, list := range [][]models.DailyActivity{a, b} {
		for _, d := range list {
			row, ok := byDay[d.Date]
			if !ok {
				row = &models.DailyActivity{Date: d.Date}
				byDay[d.Date] = row
			}
			row.Seconds += d.Seconds
			row.Cards += d.Cards
			row.Correct += d.Correct
			row.Wrong += d.Wrong
		}
	}
	return flatten(byDay)
}

func flatten(byDay map[calendar.Date]*models.DailyActivity) []models.DailyActivity {
	out := make([]models.DailyActivity, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Aggregate builds the full activity summary for one learner.
//
// The window pass counts sessions anchored at or after now minus windowDays
// whole days. A non-positive windowDays yields an empty window.
func Aggregate(sessions []models.PracticeSession, now time.Time, loc *time.Location, windowDays int) models.ActivitySummary {
	summary := models.ActivitySummary{Days: GroupByDay(sessions, loc)}

	var last time.Time
	for _, s := range sessions {
		if at, ok := lastTouched(s); ok && at.After(last) {
			last = at
		}
	}
	if !last.IsZero() {
		summary.LastPracticeAt = &last
	}

	if windowDays <= 0 {
		return summary
	}
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	seconds := 0
	days := make(map[calendar.Date]struct{})
	for _, s := range sessions {
		at, ok := anchor(s)
		if !ok || at.Before(cutoff) {
			continue
		}
		seconds += s.Seconds()
		days[calendar.DateOf(at, loc)] = struct{}{}
	}
	summary.MinutesInWindow = int(math.Round(float64(seconds) / 60))
	summary.DaysPracticedInWindow = len(days)
	return summary
}
