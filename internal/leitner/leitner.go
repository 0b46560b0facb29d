// Package leitner implements the fixed five-box review schedule.
package leitner

import (
	"github.com/vytor/vokabox/internal/calendar"
	"github.com/vytor/vokabox/internal/models"
)

// Intervals maps a stage to the number of days until the next review.
var Intervals = [...]int{1, 2, 7, 30, 90}

// MaxStage is the mastered box.
const MaxStage = len(Intervals) - 1

// Step is the outcome of one graded answer.
type Step struct {
	Stage int
	Due   calendar.Date
}

// Clamp maps a stage outside [0, MaxStage] to 0. Such values only come from
// stale or corrupted records.
func Clamp(stage int) int {
	if stage < 0 || stage > MaxStage {
		return 0
	}
	return stage
}

// IntervalFor returns the review interval in days for stage.
func IntervalFor(stage int) int {
	return Intervals[Clamp(stage)]
}

// Advance moves a correct answer up one box (capped at MaxStage) and sends a
// wrong answer back to box 0. The due date is today plus the new box's interval.
func Advance(stage int, correct bool, today calendar.Date) Step {
	next := 0
	if correct {
		next = min(Clamp(stage)+1, MaxStage)
	}
	return Step{Stage: next, Due: today.AddDays(IntervalFor(next))}
}

// ApplyAnswer returns rec updated for one graded answer given on today:
// stage and due date from Advance, counters bumped, LastSeen set and
// FirstSeenDate set if it was still empty.
func ApplyAnswer(rec models.ProgressRecord, correct bool, today calendar.Date) models.ProgressRecord {
	step := Advance(rec.Stage, correct, today)
	rec.Stage = step.Stage
	rec.DueDate = step.Due
	if correct {
		rec.CorrectCount++
	} else {
		rec.WrongCount++
	}
	rec.LastSeen = today.Ptr()
	if rec.FirstSeenDate == nil {
		rec.FirstSeenDate = today.Ptr()
	}
	return rec
}
