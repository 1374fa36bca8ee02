package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/commonGo"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("storage")

// ErrSessionNotFound signals that no session exists for the presented token
var ErrSessionNotFound = errors.New("session not found")

// sqliteStorage is the sqlite implementation for dashboard session storage
type sqliteStorage struct {
	db               *sql.DB
	retentionSeconds int
	cancelFunc       context.CancelFunc
}

// NewSQLiteStorage creates the database, schema, and starts the session
// retention cleaner. Sessions older than retentionSeconds are purged
// periodically so a stolen token cannot outlive the retention window.
func NewSQLiteStorage(dbPath string, retentionSeconds int, cleanupInterval time.Duration) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteStorage{
		db:               db,
		retentionSeconds: retentionSeconds,
		cancelFunc:       cancel,
	}

	commonGo.CronJobStarter(ctx, s.cleanExpiredSessions, cleanupInterval)

	return s, nil
}

func prepareDirectories(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		token         TEXT    NOT NULL PRIMARY KEY,
		username      TEXT    NOT NULL,
		backend_token TEXT    NOT NULL,
		created_at    INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *sqliteStorage) cleanExpiredSessions(ctx context.Context) {
	cutoff := time.Now().Unix() - int64(s.retentionSeconds)
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE created_at < ?", cutoff)
	if err != nil {
		log.Warn("failed to clean expired sessions", "error", err)
		return
	}

	deleted, _ := result.RowsAffected()
	if deleted > 0 {
		log.Debug("cleaned expired sessions", "count", deleted)
	}
}

// SaveSession persists a new dashboard session
func (s *sqliteStorage) SaveSession(ctx context.Context, session common.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, username, backend_token, created_at)
		VALUES (?, ?, ?, ?)
	`, session.Token, session.Username, session.BackendToken, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession fetches the session for the presented token. Sessions past the
// retention window count as not found even if the cleaner has not run yet.
func (s *sqliteStorage) GetSession(ctx context.Context, token string) (common.Session, error) {
	cutoff := time.Now().Unix() - int64(s.retentionSeconds)

	row := s.db.QueryRowContext(ctx, `
		SELECT token, username, backend_token, created_at
		FROM sessions
		WHERE token = ? AND created_at >= ?
	`, token, cutoff)

	var session common.Session
	err := row.Scan(&session.Token, &session.Username, &session.BackendToken, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return common.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return common.Session{}, fmt.Errorf("failed to fetch session: %w", err)
	}

	return session, nil
}

// DeleteSession removes the session for the presented token. Deleting an
// unknown token is not an error.
func (s *sqliteStorage) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Close stops the retention cleaner and shuts down the database connection
func (s *sqliteStorage) Close() error {
	s.cancelFunc()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
