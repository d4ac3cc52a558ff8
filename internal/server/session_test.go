package server

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSession(t *testing.T, seed int64) *GameSession {
	t.Helper()
	rooms := NewRoomManager()
	room, err := rooms.Create("table-1", "", "alice")
	require.NoError(t, err)
	_, err = rooms.AddBot("table-1", BotEasy)
	require.NoError(t, err)
	_, err = rooms.AddBot("table-1", BotHard)
	require.NoError(t, err)

	store, err := NewAccountStore("")
	require.NoError(t, err)
	require.NoError(t, store.Register("alice", "pw"))

	session, err := NewGameSession(room, store, seed, testLogger())
	require.NoError(t, err)
	return session
}

func TestNewGameSessionNeedsFullRoom(t *testing.T) {
	rooms := NewRoomManager()
	room, err := rooms.Create("table-1", "", "alice")
	require.NoError(t, err)
	store, err := NewAccountStore("")
	require.NoError(t, err)

	_, err = NewGameSession(room, store, 1, testLogger())
	assert.Error(t, err)
}

func TestStateHidesOpponentHands(t *testing.T) {
	session := testSession(t, 7)

	view := session.State("alice")
	require.Len(t, view.Players, 3)
	for _, p := range view.Players {
		if p.Name == "alice" {
			assert.Len(t, p.HandCardIDs, 12)
			continue
		}
		assert.Empty(t, p.HandCardIDs, "opponent hand leaked to alice")
		assert.Empty(t, p.ValidMoveCardIDs)
		assert.Equal(t, 12, p.HandCount)
	}

	botView := session.State(view.Players[1].Name)
	for _, p := range botView.Players {
		if p.Name == "alice" {
			assert.Empty(t, p.HandCardIDs, "alice's hand leaked to a bot seat")
		}
	}
}

func TestPlayCardRejectsOffTurnAndUnknownCard(t *testing.T) {
	session := testSession(t, 7)

	view := session.State("alice")
	require.Equal(t, 0, view.ActivePlayerIndex, "host holds the first seat")

	err := session.PlayCard(view.Players[1].Name, view.Players[0].HandCardIDs[0])
	assert.Error(t, err)

	err = session.PlayCard("alice", "card-hearts-nonsense")
	assert.Error(t, err)
}

// One human against two bots, the human always throwing its first valid
// move. The session has to run the bots between human plays and land on
// a finished match with a winner.
func TestSessionDrivesMatchToCompletion(t *testing.T) {
	session := testSession(t, 42)

	for i := 0; i < 5000; i++ {
		view := session.State("alice")
		if !view.IsActive {
			break
		}
		require.Equal(t, 0, view.ActivePlayerIndex,
			"bots finished their turns, it must be alice's move")
		moves := view.Players[0].ValidMoveCardIDs
		require.NotEmpty(t, moves)
		require.NoError(t, session.PlayCard("alice", moves[0]))
	}

	final := session.State("alice")
	require.False(t, final.IsActive, "match did not finish")
	assert.NotEmpty(t, final.Winner)

	winning := false
	for _, p := range final.Players {
		assert.GreaterOrEqual(t, p.WinPoints, 0)
		if p.Name == final.Winner {
			winning = p.WinPoints >= 7
		}
	}
	assert.True(t, winning, "winner below the match target")
}
