package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T, retentionSeconds int) *sqliteStorage {
	store, err := NewSQLiteStorage(":memory:", retentionSeconds, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestSaveAndGetSession(t *testing.T) {
	store := createTestStorage(t, 3600)

	session := common.Session{
		Token:        "tok-1",
		Username:     "admin",
		BackendToken: "backend-tok",
		CreatedAt:    time.Now().Unix(),
	}

	err := store.SaveSession(context.Background(), session)
	require.NoError(t, err)

	fetched, err := store.GetSession(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, session, fetched)
}

func TestGetSession_NotFound(t *testing.T) {
	store := createTestStorage(t, 3600)

	_, err := store.GetSession(context.Background(), "missing")
	assert.Equal(t, ErrSessionNotFound, err)
}

func TestGetSession_ExpiredCountsAsNotFound(t *testing.T) {
	store := createTestStorage(t, 60)

	session := common.Session{
		Token:        "tok-old",
		Username:     "admin",
		BackendToken: "backend-tok",
		CreatedAt:    time.Now().Unix() - 120,
	}
	require.NoError(t, store.SaveSession(context.Background(), session))

	_, err := store.GetSession(context.Background(), "tok-old")
	assert.Equal(t, ErrSessionNotFound, err)
}

func TestDeleteSession(t *testing.T) {
	store := createTestStorage(t, 3600)

	session := common.Session{
		Token:        "tok-del",
		Username:     "admin",
		BackendToken: "backend-tok",
		CreatedAt:    time.Now().Unix(),
	}
	require.NoError(t, store.SaveSession(context.Background(), session))
	require.NoError(t, store.DeleteSession(context.Background(), "tok-del"))

	_, err := store.GetSession(context.Background(), "tok-del")
	assert.Equal(t, ErrSessionNotFound, err)

	// deleting an unknown token is not an error
	assert.NoError(t, store.DeleteSession(context.Background(), "never-existed"))
}

func TestCleanExpiredSessions(t *testing.T) {
	store := createTestStorage(t, 60)

	fresh := common.Session{Token: "fresh", Username: "admin", BackendToken: "b", CreatedAt: time.Now().Unix()}
	stale := common.Session{Token: "stale", Username: "admin", BackendToken: "b", CreatedAt: time.Now().Unix() - 3600}
	require.NoError(t, store.SaveSession(context.Background(), fresh))
	require.NoError(t, store.SaveSession(context.Background(), stale))

	store.cleanExpiredSessions(context.Background())

	_, err := store.GetSession(context.Background(), "fresh")
	assert.NoError(t, err)

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM sessions")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)
}
