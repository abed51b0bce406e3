package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Append(Entry{Event: "login_failure", RemoteAddr: "203.0.113.7"}))
	require.NoError(t, s.Append(Entry{Event: "login_success", Actor: "admin@example.com"}))

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "login_success", entries[0].Event, "newest first")
	assert.Equal(t, "login_failure", entries[1].Event)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestStore_RecentHonorsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(Entry{Event: "content_saved"}))
		time.Sleep(time.Millisecond) // distinct timestamps keep ordering stable
	}

	entries, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStore_RecentEmpty(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
