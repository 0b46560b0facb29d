package activity

import (
	"time"

	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/leitner"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/selection"
)

// RowOptions carries the dashboard settings shared by every learner row.
type RowOptions struct {
	Today         calendar.Date
	Now           time.Time
	Location      *time.Location
	DailyNewQuota int
	WindowDays    int
	// DashboardDays caps the per-day rollups returned in a row.
	DashboardDays int
}

// Histogram counts records per stage. Records with a stage outside the
// box range are left out.
func Histogram(records []models.ProgressRecord) [leitner.MaxStage + 1]int {
	var counts [leitner.MaxStage + 1]int
	for _, r := range records {
		if r.Stage < 0 || r.Stage > leitner.MaxStage {
			continue
		}
		counts[r.Stage]++
	}
	return counts
}

// BuildLearnerRow assembles one dashboard row from a learner's progress
// records and the sessions of the rollup window, newest first.
func BuildLearnerRow(learner models.Learner, records []models.ProgressRecord, sessions []models.PracticeSession, opts RowOptions) models.LearnerDashboardRow {
	counters := selection.Counters(records, opts.Today, opts.DailyNewQuota)
	summary := Aggregate(sessions, opts.Now, opts.Location, opts.WindowDays)
	if opts.DashboardDays >= 0 && len(summary.Days) > opts.DashboardDays {
		summary.Days = summary.Days[:opts.DashboardDays]
	}

	return models.LearnerDashboardRow{
		Learner:           learner,
		TotalCards:        counters.Total,
		StageCounts:       Histogram(records),
		DueNow:            counters.DueNow,
		Mastered:          counters.Mastered,
		ProgressPct:       counters.MasteredPct,
		NewToday:          counters.NewToday,
		NewRemainingToday: counters.NewRemainingToday,
		Activity:          summary,
	}
}
