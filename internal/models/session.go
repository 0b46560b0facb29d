package models

import "time"

// PracticeSession is one learner visit. EndedAt and DurationSeconds stay nil
// until the session is closed.
type PracticeSession struct {
	ID              int64      `db:"id" json:"id"`
	LearnerID       int64      `db:"learner_id" json:"learner_id"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at"`
	DurationSeconds *int       `db:"duration_seconds" json:"duration_seconds"`
	CardsAnswered   int        `db:"cards_answered" json:"cards_answered"`
	CorrectAnswers  int        `db:"correct_answers" json:"correct_answers"`
	WrongAnswers    int        `db:"wrong_answers" json:"wrong_answers"`
	LastActivityAt  *time.Time `db:"last_activity_at" json:"last_activity_at"`
}

// Open reports whether the session has not been closed yet.
func (s PracticeSession) Open() bool {
	return s.EndedAt == nil
}

// Seconds returns the stored duration, zero while the session is open.
func (s PracticeSession) Seconds() int {
	if s.DurationSeconds == nil || *s.DurationSeconds < 0 {
		return 0
	}
	return *s.DurationSeconds
}

// SessionStart is returned when a visit begins: the new session and the
// queue it will work through.
type SessionStart struct {
	Session PracticeSession `json:"session"`
	Queue   SessionQueue    `json:"queue"`
}
