package models

import "time"

// VocabularyItem is a shared, read-only drill item. AcceptedAnswers holds one
// or more accepted translations separated by semicolons.
type VocabularyItem struct {
	ID              int64     `db:"id" json:"id"`
	Prompt          string    `db:"prompt" json:"prompt"`
	AcceptedAnswers string    `db:"accepted_answers" json:"accepted_answers"`
	IsIdiom         bool      `db:"is_idiom" json:"is_idiom"`
	LessonDay       *int      `db:"lesson_day" json:"lesson_day,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type ImportResult struct {
	Processed int      `json:"processed"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// ImportOptions controls a vocabulary import. Sheet selects a worksheet in
// spreadsheet files; empty means the first one. RemoveSource deletes the
// file once the import finished, for uploads staged in a temp dir.
type ImportOptions struct {
	Sheet        string `json:"sheet,omitempty"`
	RemoveSource bool   `json:"-"`
}
