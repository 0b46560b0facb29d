// Package sessions holds the practice session lifecycle: counters bumped on
// each graded answer and the close that fixes the duration.
package sessions

import (
	"math"
	"time"

	"github.com/vytor/vokabox/internal/models"
)

// Record counts one graded answer.
func Record(s models.PracticeSession, correct bool, now time.Time) models.PracticeSession {
	s.CardsAnswered++
	if correct {
		s.CorrectAnswers++
	} else {
		s.WrongAnswers++
	}
	at := now
	s.LastActivityAt = &at
	return s
}

// Close ends s at now. Closing an already closed session returns it unchanged.
func Close(s models.PracticeSession, now time.Time) models.PracticeSession {
	if !s.Open() {
		return s
	}
	s = CloseAt(s, now)
	at := now
	s.LastActivityAt = &at
	return s
}

// CloseAt ends s at the given instant without touching LastActivityAt.
// The stale-session sweeper uses it with the last activity time so an
// abandoned visit counts only its active span.
func CloseAt(s models.PracticeSession, end time.Time) models.PracticeSession {
	if !s.Open() {
		return s
	}
	ended := end
	s.EndedAt = &ended
	secs := Duration(s.StartedAt, end)
	s.DurationSeconds = &secs
	return s
}

// Duration returns the whole seconds between start and end, never negative.
func Duration(start, end time.Time) int {
	if start.IsZero() {
		return 0
	}
	return max(0, int(math.Round(end.Sub(start).Seconds())))
}

// IdleEnd is the instant a stale session is closed at: its last activity,
// else its start.
func IdleEnd(s models.PracticeSession) time.Time {
	if s.LastActivityAt != nil && !s.LastActivityAt.IsZero() {
		return *s.LastActivityAt
	}
	return s.StartedAt
}

// IsStale reports whether an open session has been idle for at least
// maxIdle as of now.
func IsStale(s models.PracticeSession, now time.Time, maxIdle time.Duration) bool {
	return s.Open() && !now.Before(IdleEnd(s).Add(maxIdle))
}
