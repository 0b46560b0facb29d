package models

import (
	"time"

	"github.com/vytor/vokabox/internal/calendar"
)

// DailyActivity is a per-day rollup of practice sessions. It is derived,
// never persisted.
type DailyActivity struct {
	Date    calendar.Date `json:"date"`
	Seconds int           `json:"seconds"`
	Cards   int           `json:"cards"`
	Correct int           `json:"correct"`
	Wrong   int           `json:"wrong"`
}

type ActivitySummary struct {
	Days                  []DailyActivity `json:"days"`
	LastPracticeAt        *time.Time      `json:"last_practice_at"`
	MinutesInWindow       int             `json:"minutes_in_window"`
	DaysPracticedInWindow int             `json:"days_practiced_in_window"`
}

type LearnerDashboardRow struct {
	Learner           Learner         `json:"learner"`
	TotalCards        int             `json:"total_cards"`
	StageCounts       [5]int          `json:"stage_counts"`
	DueNow            int             `json:"due_now"`
	Mastered          int             `json:"mastered"`
	ProgressPct       int             `json:"progress_pct"`
	NewToday          int             `json:"new_today"`
	NewRemainingToday int             `json:"new_remaining_today"`
	Activity          ActivitySummary `json:"activity"`
	Error             string          `json:"error,omitempty"`
}

type DashboardOverview struct {
	Today     calendar.Date         `json:"today"`
	NewPerDay int                   `json:"new_per_day"`
	Learners  []LearnerDashboardRow `json:"learners"`
}
