// Package selection builds a learner's daily work queue: overdue reviews
// first, then new items within the daily quota.
package selection

import (
	"sort"

	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/leitner"
	"github.com/vytor/vokabox/internal/models"
)

const (
	DefaultSessionLimit  = 20
	DefaultDailyNewQuota = 25
)

// Policy bounds one session.
type Policy struct {
	SessionLimit  int
	DailyNewQuota int
}

func DefaultPolicy() Policy {
	return Policy{SessionLimit: DefaultSessionLimit, DailyNewQuota: DefaultDailyNewQuota}
}

// Plan is the selector's output. An empty plan means nothing is due; it is
// not an error.
type Plan struct {
	Reviews        []models.ProgressRecord
	New            []models.ProgressRecord
	NewToday       int
	RemainingQuota int
}

// Queue returns the fixed presentation order: reviews, then new items.
func (p Plan) Queue() []models.ProgressRecord {
	out := make([]models.ProgressRecord, 0, len(p.Reviews)+len(p.New))
	out = append(out, p.Reviews...)
	return append(out, p.New...)
}

func (p Plan) Len() int { return len(p.Reviews) + len(p.New) }

func (p Plan) Empty() bool { return p.Len() == 0 }

// Select picks today's queue from one learner's progress records.
// records is not modified.
func Select(records []models.ProgressRecord, today calendar.Date, policy Policy) Plan {
	limit := max(policy.SessionLimit, 0)

	var plan Plan
	plan.NewToday = CountNewToday(records, today)
	plan.RemainingQuota = max(0, policy.DailyNewQuota-plan.NewToday)

	var reviews, fresh []models.ProgressRecord
	for _, r := range records {
		switch {
		case leitner.Clamp(r.Stage) > 0 && !r.DueDate.After(today):
			reviews = append(reviews, r)
		case leitner.Clamp(r.Stage) == 0 && r.FirstSeenDate == nil:
			fresh = append(fresh, r)
		}
	}

	sort.SliceStable(reviews, func(i, j int) bool { return less(reviews[i], reviews[j]) })
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	plan.Reviews = reviews

	allowNew := min(limit-len(reviews), plan.RemainingQuota)
	if allowNew > 0 && len(fresh) > 0 {
		sort.SliceStable(fresh, func(i, j int) bool { return less(fresh[i], fresh[j]) })
		if len(fresh) > allowNew {
			fresh = fresh[:allowNew]
		}
		plan.New = fresh
	}
	return plan
}

// CountNewToday counts records first shown on today.
func CountNewToday(records []models.ProgressRecord, today calendar.Date) int {
	n := 0
	for _, r := range records {
		if r.FirstSeenDate != nil && r.FirstSeenDate.Equal(today) {
			n++
		}
	}
	return n
}

// less orders by due date, then item, then record id.
func less(a, b models.ProgressRecord) bool {
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c < 0
	}
	if a.VocabID != b.VocabID {
		return a.VocabID < b.VocabID
	}
	return a.ID < b.ID
}
