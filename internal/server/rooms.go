package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MaxSeats is the number of seats in an Eidex room.
const MaxSeats = 3

var (
	ErrRoomExists    = errors.New("room already exists")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrWrongPassword = errors.New("wrong password")
	ErrNotInRoom     = errors.New("player not in room")
	ErrAlreadyInRoom = errors.New("player already in room")
)

// BotDifficulty selects one of the two bot strategies for a seat.
type BotDifficulty string

const (
	BotEasy BotDifficulty = "easy"
	BotHard BotDifficulty = "hard"
)

type ChatMessage struct {
	From string    `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Seat is one room slot, human or bot.
type Seat struct {
	Name       string
	IsBot      bool
	Difficulty BotDifficulty
}

// Room tracks the participants, bot seats and chat history of one game
// room before and during a match.
type Room struct {
	ID           uuid.UUID
	Name         string
	Host         string
	passwordHash []byte
	seats        []Seat
	chat         []ChatMessage
	botCounter   int
}

func (r *Room) isFull() bool {
	return len(r.seats) >= MaxSeats
}

func (r *Room) seatIndex(name string) int {
	for i, s := range r.seats {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Seats returns the seat list in join order.
func (r *Room) Seats() []Seat {
	return append([]Seat(nil), r.seats...)
}

// RoomManager owns all rooms of the process. All methods are safe for
// concurrent use.
type RoomManager struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room)}
}

// Create opens a room with the host in the first seat. An empty
// password leaves the room open.
func (m *RoomManager) Create(name, password, host string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[name]; ok {
		return nil, fmt.Errorf("room %q: %w", name, ErrRoomExists)
	}
	room := &Room{
		ID:    uuid.New(),
		Name:  name,
		Host:  host,
		seats: []Seat{{Name: host}},
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash room password: %w", err)
		}
		room.passwordHash = hash
	}
	m.rooms[name] = room
	return room, nil
}

// Join seats a player after the password check.
func (m *RoomManager) Join(roomName, password, player string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	if room.passwordHash != nil {
		if bcrypt.CompareHashAndPassword(room.passwordHash, []byte(password)) != nil {
			return nil, fmt.Errorf("room %q: %w", roomName, ErrWrongPassword)
		}
	}
	if room.seatIndex(player) >= 0 {
		return nil, fmt.Errorf("%s in room %q: %w", player, roomName, ErrAlreadyInRoom)
	}
	if room.isFull() {
		return nil, fmt.Errorf("room %q: %w", roomName, ErrRoomFull)
	}
	room.seats = append(room.seats, Seat{Name: player})
	return room, nil
}

// Leave frees the player's seat. The room is dissolved when the host
// leaves or no human seats remain.
func (m *RoomManager) Leave(roomName, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	i := room.seatIndex(player)
	if i < 0 {
		return fmt.Errorf("%s in room %q: %w", player, roomName, ErrNotInRoom)
	}
	room.seats = append(room.seats[:i], room.seats[i+1:]...)

	humans := 0
	for _, s := range room.seats {
		if !s.IsBot {
			humans++
		}
	}
	if player == room.Host || humans == 0 {
		delete(m.rooms, roomName)
	}
	return nil
}

// AddBot fills the next free seat with a bot of the given difficulty
// and returns its seat name.
func (m *RoomManager) AddBot(roomName string, difficulty BotDifficulty) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return "", fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	if room.isFull() {
		return "", fmt.Errorf("room %q: %w", roomName, ErrRoomFull)
	}
	room.botCounter++
	name := fmt.Sprintf("Bot %d (%s)", room.botCounter, difficulty)
	room.seats = append(room.seats, Seat{Name: name, IsBot: true, Difficulty: difficulty})
	return name, nil
}

// RemoveBot removes the named bot seat.
func (m *RoomManager) RemoveBot(roomName, botName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	i := room.seatIndex(botName)
	if i < 0 || !room.seats[i].IsBot {
		return fmt.Errorf("bot %s in room %q: %w", botName, roomName, ErrNotInRoom)
	}
	room.seats = append(room.seats[:i], room.seats[i+1:]...)
	return nil
}

// Get looks a room up by name.
func (m *RoomManager) Get(roomName string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	return room, nil
}

// List returns the current room names.
func (m *RoomManager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.rooms))
	for name := range m.rooms {
		names = append(names, name)
	}
	return names
}

// AppendChat records a chat line in the room history.
func (m *RoomManager) AppendChat(roomName, from, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	room.chat = append(room.chat, ChatMessage{From: from, Text: text, At: time.Now()})
	return nil
}

// ChatHistory returns a copy of the room's chat log.
func (m *RoomManager) ChatHistory(roomName string) ([]ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomName]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", roomName, ErrRoomNotFound)
	}
	return append([]ChatMessage(nil), room.chat...), nil
}
