package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file created")
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveRun(Run{Level: "1", Seed: 1, Ticks: 100, Score: 50, Outcome: OutcomeCleared})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.CountRuns("1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSaveRun(t *testing.T) {
	store := createTestStore(t)

	id1, err := store.SaveRun(Run{Level: "1", Seed: 7, Ticks: 600, Score: 100, Outcome: OutcomeCleared})
	require.NoError(t, err)
	id2, err := store.SaveRun(Run{Level: "1", Seed: 8, Ticks: 300, Score: 0, Outcome: OutcomeGameOver})
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestBestRuns(t *testing.T) {
	store := createTestStore(t)

	runs := []Run{
		{Level: "1", Seed: 1, Ticks: 900, Score: 1100, Outcome: OutcomeCleared},
		{Level: "1", Seed: 2, Ticks: 600, Score: 1100, Outcome: OutcomeCleared},
		{Level: "1", Seed: 3, Ticks: 200, Score: 100, Outcome: OutcomeGameOver},
		{Level: "2", Seed: 4, Ticks: 100, Score: 5000, Outcome: OutcomeCleared},
	}
	for _, r := range runs {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	best, err := store.BestRuns("1", 10)
	require.NoError(t, err)
	require.Len(t, best, 3)

	assert.Equal(t, int64(2), best[0].Seed, "faster run wins a tie")
	assert.Equal(t, int64(1), best[1].Seed)
	assert.Equal(t, OutcomeGameOver, best[2].Outcome)

	limited, err := store.BestRuns("1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := store.BestRuns("missing", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
