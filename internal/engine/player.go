package engine

import "fmt"

// Player is one engine-side seat: a hand, round points, cross-round
// win-points and the cached legal moves for the current turn. The
// cached set is only meaningful while it is this player's turn.
type Player struct {
	Name       string
	IsBot      bool
	Hand       []Card
	RoundPts   int
	WinPoints  int
	ValidMoves []Card
}

func NewPlayer(name string, isBot bool) *Player {
	return &Player{
		Name:  name,
		IsBot: isBot,
		Hand:  make([]Card, 0, HandSize),
	}
}

// HasCard reports whether the hand holds the exact card.
func (p *Player) HasCard(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// CardByID looks a card up in the hand by its wire identifier.
func (p *Player) CardByID(id string) (Card, error) {
	for _, h := range p.Hand {
		if h.ID() == id {
			return h, nil
		}
	}
	return Card{}, fmt.Errorf("card %q not in hand of %s: %w", id, p.Name, ErrCardNotInHand)
}

func (p *Player) removeCard(c Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) setValidMoves(cards []Card) {
	p.ValidMoves = append(p.ValidMoves[:0], cards...)
}

func hasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}
