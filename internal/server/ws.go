package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ryank30/Cosmic-Eidex/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server ties the room registry, account store and per-room game
// sessions to the WebSocket transport. members tracks the connected
// humans per room so broadcasts reach every seat, not just the client
// whose message triggered them.
type Server struct {
	mu       sync.Mutex
	rooms    *RoomManager
	accounts *AccountStore
	sessions map[string]*GameSession
	members  map[string]map[string]*playerConn
	log      *logrus.Logger
	seedFn   func() int64
}

func New(accounts *AccountStore, log *logrus.Logger) *Server {
	return &Server{
		rooms:    NewRoomManager(),
		accounts: accounts,
		sessions: make(map[string]*GameSession),
		members:  make(map[string]map[string]*playerConn),
		log:      log,
		seedFn:   func() int64 { return time.Now().UnixNano() },
	}
}

// client is one WebSocket connection with its login state.
type client struct {
	id   uuid.UUID
	conn *playerConn
	name string
	room string
}

// HandleWS upgrades the connection and runs the client read loop.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("ws upgrade")
		return
	}
	conn := newPlayerConn(ws)
	defer conn.Close()

	c := &client{id: uuid.New(), conn: conn}
	s.log.WithField("client", c.id).Debug("client connected")
	defer s.disconnect(c)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.handleMessage(c, msg)
	}
}

func (s *Server) handleMessage(c *client, msg ClientMessage) {
	var err error
	switch msg.Type {
	case "register":
		err = s.accounts.Register(msg.Username, msg.Password)
		if err == nil {
			c.name = msg.Username
		}
	case "login":
		err = s.accounts.Login(msg.Username, msg.Password)
		if err == nil {
			c.name = msg.Username
		}
	case "create_room":
		_, err = s.rooms.Create(msg.Room, msg.Password, c.name)
		if err == nil {
			c.room = msg.Room
			s.addMember(c)
		}
	case "join_room":
		_, err = s.rooms.Join(msg.Room, msg.Password, c.name)
		if err == nil {
			c.room = msg.Room
			s.addMember(c)
			if session := s.session(msg.Room); session != nil {
				session.Attach(c.name, c.conn)
			}
		}
	case "leave_room":
		err = s.leaveRoom(c)
	case "add_bot":
		_, err = s.rooms.AddBot(c.room, BotDifficulty(msg.Difficulty))
	case "remove_bot":
		err = s.rooms.RemoveBot(c.room, msg.BotName)
	case "start_game":
		err = s.startGame(c)
	case "play_card":
		err = s.playCard(c, msg.CardID)
	case "chat":
		if err := s.chat(c, msg.Text); err != nil {
			s.sendError(c, msg.RequestID, errorCode(err), err.Error())
		}
		return
	case "request_state":
		s.sendState(c, msg.RequestID)
		return
	case "list_rooms":
		s.reply(c, ServerMessage{Type: "rooms", RequestID: msg.RequestID, Rooms: s.rooms.List()})
		return
	case "leaderboard":
		s.reply(c, ServerMessage{Type: "leaderboard", RequestID: msg.RequestID, Leaderboard: s.accounts.Leaderboard()})
		return
	default:
		s.sendError(c, msg.RequestID, "unknown_type", "unknown message type")
		return
	}

	if err != nil {
		s.sendError(c, msg.RequestID, errorCode(err), err.Error())
		return
	}
	s.reply(c, ServerMessage{Type: "ok", RequestID: msg.RequestID, Room: c.room})
}

func (s *Server) startGame(c *client) error {
	room, err := s.rooms.Get(c.room)
	if err != nil {
		return err
	}
	session, err := NewGameSession(room, s.accounts, s.seedFn(), s.log)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[room.Name] = session
	s.mu.Unlock()

	// Every connected human in the room gets broadcasts, not just the
	// client that started the game.
	for name, conn := range s.roomConns(room.Name) {
		session.Attach(name, conn)
	}
	session.KickOff()
	return nil
}

func (s *Server) playCard(c *client, cardID string) error {
	session := s.session(c.room)
	if session == nil {
		return ErrGameNotStarted
	}
	return session.PlayCard(c.name, cardID)
}

// chat appends to the room history and pushes the update to every
// connected member.
func (s *Server) chat(c *client, text string) error {
	if err := s.rooms.AppendChat(c.room, c.name, text); err != nil {
		return err
	}
	history, err := s.rooms.ChatHistory(c.room)
	if err != nil {
		return err
	}
	msg := ServerMessage{Type: "chat", Room: c.room, Chat: history}
	for name, conn := range s.roomConns(c.room) {
		if err := conn.WriteJSON(msg); err != nil {
			s.log.WithError(err).WithField("player", name).Warn("send chat")
		}
	}
	return nil
}

func (s *Server) leaveRoom(c *client) error {
	room := c.room
	if session := s.session(room); session != nil {
		session.Detach(c.name)
	}
	err := s.rooms.Leave(room, c.name)
	s.dropMember(room, c.name)
	if _, getErr := s.rooms.Get(room); getErr != nil {
		// The departure dissolved the room.
		s.mu.Lock()
		delete(s.sessions, room)
		delete(s.members, room)
		s.mu.Unlock()
	}
	c.room = ""
	return err
}

func (s *Server) disconnect(c *client) {
	if c.room != "" {
		if session := s.session(c.room); session != nil {
			session.Detach(c.name)
		}
		s.dropMember(c.room, c.name)
	}
	s.log.WithField("client", c.id).Debug("client disconnected")
}

func (s *Server) addMember(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.members[c.room]
	if room == nil {
		room = make(map[string]*playerConn)
		s.members[c.room] = room
	}
	room[c.name] = c.conn
}

func (s *Server) dropMember(room, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.members[room]; m != nil {
		delete(m, name)
		if len(m) == 0 {
			delete(s.members, room)
		}
	}
}

// roomConns snapshots the room's connections so callers can write
// without holding the server lock.
func (s *Server) roomConns(room string) map[string]*playerConn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*playerConn, len(s.members[room]))
	for name, conn := range s.members[room] {
		out[name] = conn
	}
	return out
}

func (s *Server) session(room string) *GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[room]
}

func (s *Server) sendState(c *client, requestID string) {
	session := s.session(c.room)
	if session == nil {
		s.sendError(c, requestID, "not_started", ErrGameNotStarted.Error())
		return
	}
	s.reply(c, ServerMessage{
		Type:      "state",
		RequestID: requestID,
		Room:      c.room,
		State:     session.State(c.name),
	})
}

func (s *Server) reply(c *client, msg ServerMessage) {
	if err := c.conn.WriteJSON(msg); err != nil {
		s.log.WithError(err).WithField("client", c.id).Warn("send reply")
	}
}

func (s *Server) sendError(c *client, requestID, code, message string) {
	s.reply(c, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Error:     &ErrorView{Code: code, Message: message},
	})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, engine.ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, engine.ErrIllegalMove):
		return "illegal_move"
	case errors.Is(err, engine.ErrGameNotActive):
		return "game_not_active"
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomExists):
		return "room_exists"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrWrongPassword):
		return "wrong_password"
	case errors.Is(err, ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, ErrGameNotStarted):
		return "not_started"
	default:
		return "request_failed"
	}
}
