// Package db opens the application databases that typeweaver reflects on.
//
// typeweaver never writes to these databases: connections are opened in
// SQLite's read-only mode.
package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/teranos/typeweaver/errors"
)

// SQLiteBusyTimeoutMS is how long a read waits on a database another
// process (a running Rails server) holds locked.
const SQLiteBusyTimeoutMS = 5000

// OpenReadOnly opens the SQLite database at path for schema reflection.
// A missing file is reported as errors.ErrNotFound rather than created.
// If logger is provided, logs database operations; otherwise operates silently.
func OpenReadOnly(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.NewNotFoundError("database %s", path),
				"run the Rails migrations first, or point rails.database at the development database")
		}
		return nil, errors.Wrapf(err, "failed to stat database %s", path)
	}

	if logger != nil {
		logger.Debugw("Opening database", "path", path, "mode", "ro")
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, SQLiteBusyTimeoutMS)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s", path)
	}

	if logger != nil {
		logger.Infow("Database opened", "path", path)
	}

	return db, nil
}
