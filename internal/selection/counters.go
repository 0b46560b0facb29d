package selection

import (
	"math"

	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/leitner"
	"github.com/vytor/vokabox/internal/models"
)

// Counters computes the trainer header figures for one learner.
func Counters(records []models.ProgressRecord, today calendar.Date, dailyNewQuota int) models.ProgressCounters {
	c := models.ProgressCounters{Total: len(records)}
	for _, r := range records {
		stage := leitner.Clamp(r.Stage)
		if stage > 0 {
			c.Learned++
		}
		if stage == leitner.MaxStage {
			c.Mastered++
		}
		if !r.DueDate.IsZero() && !r.DueDate.After(today) {
			c.DueNow++
		}
	}
	c.NewToday = CountNewToday(records, today)
	c.NewRemainingToday = max(0, dailyNewQuota-c.NewToday)
	c.LearnedPct = Percent(c.Learned, c.Total)
	c.MasteredPct = Percent(c.Mastered, c.Total)
	return c
}

// Percent returns part/total as a rounded whole percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
