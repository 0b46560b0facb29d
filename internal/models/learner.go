package models

import "time"

type Learner struct {
	ID          int64     `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	ClassName   string    `db:"class_name" json:"class_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
