package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerly/circulate/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "circ.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	user := domain.User{ID: "user-1", Email: "ada@example.com", Name: "Ada", IsAdmin: true}
	require.NoError(t, s.SaveSession("token-1", user))

	assert.Equal(t, "token-1", s.Token())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestStore_SessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circ.db")

	s, err := Open(path)
	require.NoError(t, err)
	user := domain.User{ID: "user-1", Email: "ada@example.com", Name: "Ada"}
	require.NoError(t, s.SaveSession("token-1", user))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, "token-1", reopened.Token())
	got, ok := reopened.User()
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestStore_TokenEmptyWhenLoggedOut(t *testing.T) {
	s := openTestStore(t)
	assert.Empty(t, s.Token())
}

func TestStore_ClearSessionRemovesBothKeys(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveSession("token-1", domain.User{ID: "user-1"}))

	s.ClearSession()

	assert.Empty(t, s.Token())
	_, ok := s.User()
	assert.False(t, ok)
}

// A corrupted principal is purged on read so the session falls back to
// anonymous instead of failing every startup.
func TestStore_MalformedPrincipalPurged(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.set(bucketSession, keyPrincipal, []byte("{not json")))

	_, ok := s.User()
	assert.False(t, ok)

	_, ok = s.get(bucketSession, keyPrincipal)
	assert.False(t, ok)
}

func TestStore_SaveUserKeepsToken(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveSession("token-1", domain.User{ID: "user-1", Name: "Ada"}))

	require.NoError(t, s.SaveUser(domain.User{ID: "user-1", Name: "Ada Lovelace"}))

	assert.Equal(t, "token-1", s.Token())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", got.Name)
}

func TestStore_BooksSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.Books()
	assert.False(t, ok)

	books := []domain.Book{
		{ID: "book-1", Title: "Anathem", Author: "Neal Stephenson", TotalCopies: 3, AvailableCopies: 1},
		{ID: "book-2", Title: "Blindsight", Author: "Peter Watts"},
	}
	require.NoError(t, s.SaveBooks(books))

	got, ok := s.Books()
	require.True(t, ok)
	assert.Equal(t, books, got)
}

func TestStore_MemoryOnlyMode(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	user := domain.User{ID: "user-1", Email: "ada@example.com"}
	require.NoError(t, s.SaveSession("token-1", user))

	assert.Equal(t, "token-1", s.Token())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, user, got)

	s.ClearSession()
	assert.Empty(t, s.Token())
}
