package valkeydb_test

import (
	"context"
	"os"
	"testing"
	"time"

	apperrors "jobspec-miner/internal/errors"
	"jobspec-miner/internal/valkeydb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUpTestDB(t *testing.T) *valkeydb.ValkeyClient {

	t.Helper()

	url := os.Getenv("VALKEY_TEST_URL")
	if url == "" {
		t.Skip("VALKEY_TEST_URL not set, skipping integration test")
	}

	ctx := context.Background()

	db, err := valkeydb.New(ctx, url, os.Getenv("VALKEY_TEST_PASSWORD"), time.Minute)

	if err != nil {

		t.Fatalf("failed to connect to test database: %v", err)
	}

	t.Cleanup(db.Close)

	return db
}

func TestTryLockExcludesSecondCaller(t *testing.T) {
	valkeyDB := setUpTestDB(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	unlock, err := valkeyDB.TryLock(ctx, sessionID)
	require.NoError(t, err)

	_, err = valkeyDB.TryLock(ctx, sessionID)
	assert.ErrorIs(t, err, apperrors.ErrExtractionInProgress)

	require.NoError(t, unlock(ctx))

	unlock, err = valkeyDB.TryLock(ctx, sessionID)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestUnlockIgnoresForeignLock(t *testing.T) {
	valkeyDB := setUpTestDB(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	unlock, err := valkeyDB.TryLock(ctx, sessionID)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))

	second, err := valkeyDB.TryLock(ctx, sessionID)
	require.NoError(t, err)

	// the first holder's release must not free the second holder's lock
	require.NoError(t, unlock(ctx))

	_, err = valkeyDB.TryLock(ctx, sessionID)
	assert.ErrorIs(t, err, apperrors.ErrExtractionInProgress)

	require.NoError(t, second(ctx))
}
