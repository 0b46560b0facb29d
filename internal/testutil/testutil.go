package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vokabox/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is capped at one connection since every new connection to
// :memory: would open an empty database.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), conn.DB), "failed to apply migrations")
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedLearner inserts a learner and returns its id.
func SeedLearner(t *testing.T, conn *sqlx.DB, username string) int64 {
	t.Helper()
	res, err := conn.Exec(`INSERT INTO learners (username, display_name) VALUES (?, ?)`, username, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedVocab inserts a vocabulary item and returns its id.
func SeedVocab(t *testing.T, conn *sqlx.DB, prompt, answers string) int64 {
	t.Helper()
	res, err := conn.Exec(`INSERT INTO vocab (prompt, accepted_answers) VALUES (?, ?)`, prompt, answers)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
