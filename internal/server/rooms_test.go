package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndJoinRoom(t *testing.T) {
	m := NewRoomManager()

	room, err := m.Create("table-1", "", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", room.Host)
	assert.Len(t, room.Seats(), 1)

	_, err = m.Create("table-1", "", "bob")
	assert.ErrorIs(t, err, ErrRoomExists)

	_, err = m.Join("table-1", "", "bob")
	require.NoError(t, err)
	_, err = m.Join("table-1", "", "bob")
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	_, err = m.Join("no-such-room", "", "carol")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinPasswordCheck(t *testing.T) {
	m := NewRoomManager()
	_, err := m.Create("secret", "hunter2", "alice")
	require.NoError(t, err)

	_, err = m.Join("secret", "wrong", "bob")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = m.Join("secret", "hunter2", "bob")
	assert.NoError(t, err)
}

func TestRoomFull(t *testing.T) {
	m := NewRoomManager()
	_, err := m.Create("table-1", "", "alice")
	require.NoError(t, err)

	_, err = m.Join("table-1", "", "bob")
	require.NoError(t, err)
	_, err = m.Join("table-1", "", "carol")
	require.NoError(t, err)

	_, err = m.Join("table-1", "", "dave")
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = m.AddBot("table-1", BotEasy)
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestAddAndRemoveBots(t *testing.T) {
	m := NewRoomManager()
	_, err := m.Create("table-1", "", "alice")
	require.NoError(t, err)

	easy, err := m.AddBot("table-1", BotEasy)
	require.NoError(t, err)
	_, err = m.AddBot("table-1", BotHard)
	require.NoError(t, err)

	room, err := m.Get("table-1")
	require.NoError(t, err)
	seats := room.Seats()
	require.Len(t, seats, 3)
	assert.False(t, seats[0].IsBot)
	assert.True(t, seats[1].IsBot)
	assert.Equal(t, BotEasy, seats[1].Difficulty)
	assert.Equal(t, BotHard, seats[2].Difficulty)

	require.NoError(t, m.RemoveBot("table-1", easy))
	assert.ErrorIs(t, m.RemoveBot("table-1", easy), ErrNotInRoom)
	// Removing a human seat through RemoveBot is refused.
	assert.ErrorIs(t, m.RemoveBot("table-1", "alice"), ErrNotInRoom)
}

func TestLeaveDissolvesRoom(t *testing.T) {
	m := NewRoomManager()
	_, err := m.Create("table-1", "", "alice")
	require.NoError(t, err)
	_, err = m.Join("table-1", "", "bob")
	require.NoError(t, err)

	require.NoError(t, m.Leave("table-1", "alice"))
	_, err = m.Get("table-1")
	assert.ErrorIs(t, err, ErrRoomNotFound, "host leaving dissolves the room")
}

func TestChatHistory(t *testing.T) {
	m := NewRoomManager()
	_, err := m.Create("table-1", "", "alice")
	require.NoError(t, err)

	require.NoError(t, m.AppendChat("table-1", "alice", "hi"))
	require.NoError(t, m.AppendChat("table-1", "alice", "anyone?"))

	history, err := m.ChatHistory("table-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Text)
	assert.Equal(t, "alice", history[1].From)
}
