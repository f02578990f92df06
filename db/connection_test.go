package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/typeweaver/errors"
)

// createFixture writes a small SQLite database with one table.
func createFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "development.sqlite3")

	rw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer rw.Close()

	_, err = rw.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name varchar NOT NULL)`)
	require.NoError(t, err)
	return path
}

func TestOpenReadOnly(t *testing.T) {
	t.Run("reads existing database", func(t *testing.T) {
		db, err := OpenReadOnly(createFixture(t), nil)
		require.NoError(t, err)
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'`).Scan(&count))
		assert.Equal(t, 1, count)

		var busyTimeout int
		require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
		assert.Equal(t, SQLiteBusyTimeoutMS, busyTimeout)
	})

	t.Run("rejects writes", func(t *testing.T) {
		db, err := OpenReadOnly(createFixture(t), nil)
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Exec(`INSERT INTO users (name) VALUES ('ada')`)
		assert.Error(t, err)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.sqlite3"), nil)
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})
}

func TestOpenReadOnly_WithLogger(t *testing.T) {
	db, err := OpenReadOnly(createFixture(t), zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestIsDatabaseClosed(t *testing.T) {
	db, err := OpenReadOnly(createFixture(t), nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.Exec("PRAGMA busy_timeout")
	require.Error(t, err)
	assert.True(t, IsDatabaseClosed(err))

	assert.True(t, IsDatabaseClosed(errors.Wrap(ErrDatabaseClosed, "reflect users")))
	assert.False(t, IsDatabaseClosed(nil))
	assert.False(t, IsDatabaseClosed(errors.New("disk I/O error")))
}
