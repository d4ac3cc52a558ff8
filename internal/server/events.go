package server

import "github.com/ryank30/Cosmic-Eidex/internal/engine"

type EventPayload struct {
	Player string `json:"player,omitempty"`
	CardID string `json:"cardId,omitempty"`
	Points int    `json:"points,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

// gameSnapshot captures the bits of engine state the event diff needs.
type gameSnapshot struct {
	active    bool
	pushPhase bool
	mode      string
	winPoints map[string]int
	trickWins map[string]int
}

func snapshot(g *engine.Game) gameSnapshot {
	s := gameSnapshot{
		active:    g.IsActive(),
		pushPhase: g.InPushPhase(),
		mode:      g.GameModeString(),
		winPoints: make(map[string]int, 3),
		trickWins: make(map[string]int, 3),
	}
	for _, p := range g.Players() {
		s.winPoints[p.Name] = p.WinPoints
		s.trickWins[p.Name] = g.TrickWins(p.Name)
	}
	return s
}

// buildEvents diffs the state around one play into broadcastable
// events.
func buildEvents(prev gameSnapshot, g *engine.Game, player, cardID string) []Event {
	events := []Event{}
	if prev.pushPhase {
		events = append(events, Event{Type: "card_pushed", Data: EventPayload{Player: player}})
	} else {
		events = append(events, Event{Type: "card_played", Data: EventPayload{Player: player, CardID: cardID}})
	}

	rolled := !prev.pushPhase && g.InPushPhase() && g.IsActive()
	if rolled {
		// The round-ending play re-dealt before this diff ran, zeroing
		// the per-round tallies. The final trick survives in the
		// engine's last-trick record.
		if w := g.LastTrickWinner(); w != nil {
			events = append(events, Event{
				Type: "trick_won",
				Data: EventPayload{Player: w.Name, Points: g.LastTrickPoints()},
			})
		}
	} else {
		for _, p := range g.Players() {
			if g.TrickWins(p.Name) > prev.trickWins[p.Name] {
				events = append(events, Event{
					Type: "trick_won",
					Data: EventPayload{Player: p.Name, Points: g.LastTrickPoints()},
				})
			}
		}
	}

	for _, p := range g.Players() {
		if p.WinPoints != prev.winPoints[p.Name] {
			events = append(events, Event{
				Type: "win_points_changed",
				Data: EventPayload{Player: p.Name, Points: p.WinPoints},
			})
		}
	}

	// The push phase re-arming mid-match means a new round was dealt.
	if rolled {
		events = append(events, Event{Type: "round_started", Data: EventPayload{Mode: g.GameModeString()}})
	}

	if prev.active && !g.IsActive() {
		payload := EventPayload{}
		if w := g.Winner(); w != nil {
			payload.Player = w.Name
		}
		events = append(events, Event{Type: "match_over", Data: payload})
	}
	return events
}
