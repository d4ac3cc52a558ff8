package server

import "github.com/ryank30/Cosmic-Eidex/internal/engine"

type PlayerView struct {
	Name             string   `json:"name"`
	IsBot            bool     `json:"isBot"`
	HandCardIDs      []string `json:"handCardIds,omitempty"`
	HandCount        int      `json:"handCount"`
	RoundPoints      int      `json:"roundPoints"`
	WinPoints        int      `json:"winPoints"`
	ValidMoveCardIDs []string `json:"validMoveCardIds,omitempty"`
}

type TrickEntry struct {
	Player string `json:"player"`
	CardID string `json:"cardId"`
}

type GameView struct {
	Players           []PlayerView `json:"players"`
	CurrentTrick      []TrickEntry `json:"currentTrick"`
	ActivePlayerIndex int          `json:"activePlayerIndex"`
	Mode              string       `json:"mode"`
	TrumpSuit         string       `json:"trumpSuit,omitempty"`
	FaceUpCardID      string       `json:"faceUpCardId"`
	PushPhase         bool         `json:"pushPhase"`
	IsActive          bool         `json:"isActive"`
	Winner            string       `json:"winner,omitempty"`
	LastTrickWinner   string       `json:"lastTrickWinner,omitempty"`
	LastTrickPoints   int          `json:"lastTrickPoints,omitempty"`
}

// BuildGameView renders the game for one viewer. Hands and valid moves
// are only included for the viewer's own seat; opponents expose counts.
func BuildGameView(g *engine.Game, viewer string) *GameView {
	players := make([]PlayerView, 0, len(g.Players()))
	for _, p := range g.Players() {
		view := PlayerView{
			Name:        p.Name,
			IsBot:       p.IsBot,
			HandCount:   len(p.Hand),
			RoundPoints: p.RoundPts,
			WinPoints:   p.WinPoints,
		}
		if p.Name == viewer {
			view.HandCardIDs = cardIDs(p.Hand)
			view.ValidMoveCardIDs = cardIDs(p.ValidMoves)
		}
		players = append(players, view)
	}

	trick := make([]TrickEntry, 0, 3)
	for _, play := range g.Trick().Plays() {
		trick = append(trick, TrickEntry{Player: play.Player.Name, CardID: play.Card.ID()})
	}

	view := &GameView{
		Players:           players,
		CurrentTrick:      trick,
		ActivePlayerIndex: g.CurrentPlayerIndex(),
		Mode:              g.GameModeString(),
		FaceUpCardID:      g.FaceUpCard().ID(),
		PushPhase:         g.InPushPhase(),
		IsActive:          g.IsActive(),
		LastTrickPoints:   g.LastTrickPoints(),
	}
	if t := g.TrumpSuit(); t != nil {
		view.TrumpSuit = t.String()
	}
	if w := g.Winner(); w != nil {
		view.Winner = w.Name
	}
	if w := g.LastTrickWinner(); w != nil {
		view.LastTrickWinner = w.Name
	}
	return view
}

func cardIDs(cards []engine.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID())
	}
	return out
}
