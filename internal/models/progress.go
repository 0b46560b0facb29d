package models

import "github.com/vytor/vokabox/internal/calendar"

// ProgressRecord is one learner's mastery state for one vocabulary item.
// Unique per (LearnerID, VocabID).
type ProgressRecord struct {
	ID            int64          `db:"id" json:"id"`
	LearnerID     int64          `db:"learner_id" json:"learner_id"`
	VocabID       int64          `db:"vocab_id" json:"vocab_id"`
	Stage         int            `db:"stage" json:"stage"`
	DueDate       calendar.Date  `db:"due_date" json:"due_date"`
	FirstSeenDate *calendar.Date `db:"first_seen_date" json:"first_seen_date"`
	CorrectCount  int            `db:"correct_count" json:"correct_count"`
	WrongCount    int            `db:"wrong_count" json:"wrong_count"`
	LastSeen      *calendar.Date `db:"last_seen" json:"last_seen"`
}

// IsNew reports whether the learner has never been shown the item.
func (p ProgressRecord) IsNew() bool {
	return p.Stage == 0 && p.FirstSeenDate == nil
}

// WorkItem is one entry of a session queue: a progress record joined with
// the item's prompt. Accepted answers stay server-side.
type WorkItem struct {
	ProgressID    int64          `json:"progress_id"`
	VocabID       int64          `json:"vocab_id"`
	Prompt        string         `json:"prompt"`
	IsIdiom       bool           `json:"is_idiom"`
	Stage         int            `json:"stage"`
	DueDate       calendar.Date  `json:"due_date"`
	FirstSeenDate *calendar.Date `json:"first_seen_date"`
	CorrectCount  int            `json:"correct_count"`
	WrongCount    int            `json:"wrong_count"`
	IsReview      bool           `json:"is_review"`
}

// ProgressCounters are the trainer header figures.
type ProgressCounters struct {
	Total             int `json:"total"`
	Learned           int `json:"learned"`
	Mastered          int `json:"mastered"`
	LearnedPct        int `json:"learned_pct"`
	MasteredPct       int `json:"mastered_pct"`
	NewToday          int `json:"new_today"`
	NewRemainingToday int `json:"new_remaining_today"`
	DueNow            int `json:"due_now"`
}

// SessionQueue is the fixed presentation order for one visit.
type SessionQueue struct {
	Today      calendar.Date    `json:"today"`
	Items      []WorkItem       `json:"items"`
	Reviews    int              `json:"reviews"`
	NewItems   int              `json:"new_items"`
	NothingDue bool             `json:"nothing_due"`
	Counters   ProgressCounters `json:"counters"`
}

// AnswerOutcome is returned for every graded answer, including fuzzy
// near-misses, so the learner always sees the canonical solution.
type AnswerOutcome struct {
	Correct         bool             `json:"correct"`
	Match           string           `json:"match"`
	Solution        string           `json:"solution"`
	OtherSolutions  []string         `json:"other_solutions"`
	Stage           int              `json:"stage"`
	DueDate         calendar.Date    `json:"due_date"`
	Counters        ProgressCounters `json:"counters"`
	SessionAnswered int              `json:"session_answered"`
}
