package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	store, err := NewAccountStore("")
	require.NoError(t, err)

	require.NoError(t, store.Register("alice", "pw1"))
	assert.ErrorIs(t, store.Register("alice", "other"), ErrUsernameTaken)

	assert.NoError(t, store.Login("alice", "pw1"))
	assert.ErrorIs(t, store.Login("alice", "wrong"), ErrWrongPassword)
	assert.ErrorIs(t, store.Login("nobody", "pw1"), ErrUnknownUser)
}

func TestAccountPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")

	store, err := NewAccountStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Register("alice", "pw1"))
	require.NoError(t, store.Register("bob", "pw2"))
	require.NoError(t, store.AddWin("alice"))
	require.NoError(t, store.AddWin("alice"))

	reloaded, err := NewAccountStore(path)
	require.NoError(t, err)
	assert.NoError(t, reloaded.Login("bob", "pw2"))

	board := reloaded.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, "alice", board[0].Username)
	assert.Equal(t, 2, board[0].Wins)
}

func TestAddWinIgnoresUnknownNames(t *testing.T) {
	store, err := NewAccountStore("")
	require.NoError(t, err)
	// Bot seats have no account; their wins are dropped silently.
	assert.NoError(t, store.AddWin("Bot 1 (easy)"))
	assert.Empty(t, store.Leaderboard())
}

func TestLeaderboardOrdering(t *testing.T) {
	store, err := NewAccountStore("")
	require.NoError(t, err)
	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, store.Register(name, "pw"))
	}
	require.NoError(t, store.AddWin("bob"))
	require.NoError(t, store.AddWin("bob"))
	require.NoError(t, store.AddWin("carol"))
	require.NoError(t, store.AddWin("alice"))

	board := store.Leaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, "bob", board[0].Username)
	// Equal win counts fall back to name order.
	assert.Equal(t, "alice", board[1].Username)
	assert.Equal(t, "carol", board[2].Username)
}
