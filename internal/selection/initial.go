package selection

import (
	"sort"

	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/models"
)

// PlanInitialProgress returns one stage-0 record per item for a learner who
// has none yet. Items are ordered by lesson day (items without one last) and
// id, and due dates are staggered so that dailyNewQuota items fall on each
// consecutive day starting today.
func PlanInitialProgress(learnerID int64, items []models.VocabularyItem, today calendar.Date, dailyNewQuota int) []models.ProgressRecord {
	perDay := max(dailyNewQuota, 1)

	ordered := append([]models.VocabularyItem(nil), items...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		switch {
		case a.LessonDay == nil && b.LessonDay != nil:
			return false
		case a.LessonDay != nil && b.LessonDay == nil:
			return true
		case a.LessonDay != nil && *a.LessonDay != *b.LessonDay:
			return *a.LessonDay < *b.LessonDay
		}
		return a.ID < b.ID
	})

	out := make([]models.ProgressRecord, 0, len(ordered))
	for i, item := range ordered {
		out = append(out, models.ProgressRecord{
			LearnerID: learnerID,
			VocabID:   item.ID,
			Stage:     0,
			DueDate:   today.AddDays(i / perDay),
		})
	}
	return out
}
