package server

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ryank30/Cosmic-Eidex/internal/bots"
	"github.com/ryank30/Cosmic-Eidex/internal/engine"
)

var ErrGameNotStarted = errors.New("game not started in this room")

// GameSession drives one engine instance for one room. It owns the only
// lock under which the engine is ever touched; every PlayCard for the
// room funnels through here, including the synchronous bot turns.
type GameSession struct {
	mu         sync.Mutex
	room       string
	game       *engine.Game
	strategies map[string]bots.Strategy
	conns      map[string]*playerConn
	log        *logrus.Entry
	accounts   *AccountStore
}

// NewGameSession builds the engine players from the room seats and
// deals the first round.
func NewGameSession(room *Room, accounts *AccountStore, seed int64, log *logrus.Logger) (*GameSession, error) {
	seats := room.Seats()
	if len(seats) != MaxSeats {
		return nil, fmt.Errorf("room %q has %d of %d seats filled", room.Name, len(seats), MaxSeats)
	}

	players := make([]*engine.Player, 0, MaxSeats)
	strategies := make(map[string]bots.Strategy, MaxSeats)
	for i, seat := range seats {
		players = append(players, engine.NewPlayer(seat.Name, seat.IsBot))
		if seat.IsBot {
			botSeed := seed + int64(i) + 1
			if seat.Difficulty == BotHard {
				strategies[seat.Name] = bots.NewHard(botSeed)
			} else {
				strategies[seat.Name] = bots.NewEasy(botSeed)
			}
		}
	}

	game, err := engine.NewGame(room.Name, players, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	game.StartRound()

	s := &GameSession{
		room:       room.Name,
		game:       game,
		strategies: strategies,
		conns:      make(map[string]*playerConn),
		log:        log.WithField("room", room.Name),
		accounts:   accounts,
	}
	s.log.WithField("mode", game.GameModeString()).Info("game started")
	return s, nil
}

// Attach registers a player's connection for state broadcasts.
func (s *GameSession) Attach(player string, conn *playerConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[player] = conn
	s.sendStateLocked(player, nil)
}

// Detach drops a player's connection. The round keeps waiting for that
// seat's next play.
func (s *GameSession) Detach(player string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, player)
}

// PlayCard applies one human play and then runs any bot turns it
// unblocks, broadcasting state after each mutation.
func (s *GameSession) PlayCard(player, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := snapshot(s.game)
	if err := s.game.PlayCardByID(player, cardID); err != nil {
		return err
	}
	s.broadcastLocked(buildEvents(prev, s.game, player, cardID))

	s.runBotsLocked()
	s.finishIfOverLocked()
	return nil
}

// KickOff runs bot turns at game start, for rooms where bots lead.
func (s *GameSession) KickOff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runBotsLocked()
	s.finishIfOverLocked()
}

func (s *GameSession) runBotsLocked() {
	for s.game.IsActive() && s.game.CurrentPlayer().IsBot {
		bot := s.game.CurrentPlayer()
		strategy, ok := s.strategies[bot.Name]
		if !ok {
			s.log.WithField("player", bot.Name).Error("bot seat without strategy")
			return
		}
		prev := snapshot(s.game)
		card := strategy.ChooseCard(s.game, bot)
		if err := s.game.PlayCard(bot, card); err != nil {
			s.log.WithError(err).WithField("player", bot.Name).Error("bot move rejected")
			return
		}
		s.broadcastLocked(buildEvents(prev, s.game, bot.Name, card.ID()))
	}
}

func (s *GameSession) finishIfOverLocked() {
	if s.game.IsActive() {
		return
	}
	winner := s.game.Winner()
	if winner == nil {
		return
	}
	s.log.WithField("winner", winner.Name).Info("match over")
	if !winner.IsBot {
		if err := s.accounts.AddWin(winner.Name); err != nil {
			s.log.WithError(err).Warn("record win")
		}
	}
}

// State renders the session for one viewer.
func (s *GameSession) State(viewer string) *GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildGameView(s.game, viewer)
}

// GameMode reports the round's mode string.
func (s *GameSession) GameMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GameModeString()
}

func (s *GameSession) broadcastLocked(events []Event) {
	for player := range s.conns {
		s.sendStateLocked(player, events)
	}
}

func (s *GameSession) sendStateLocked(player string, events []Event) {
	conn := s.conns[player]
	if conn == nil {
		return
	}
	msg := ServerMessage{
		Type:   "state",
		Room:   s.room,
		State:  BuildGameView(s.game, player),
		Events: events,
	}
	if err := conn.WriteJSON(msg); err != nil {
		s.log.WithError(err).WithField("player", player).Warn("send state")
	}
}
