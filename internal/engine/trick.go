package engine

// Play is one (player, card) entry in play order.
type Play struct {
	Player *Player
	Card   Card
}

// Trick records the cards of the current exchange in play order.
// It is cleared when the next exchange starts, not immediately on
// resolution, so clients can still see the completed trick.
type Trick struct {
	plays []Play
}

func NewTrick() *Trick {
	return &Trick{plays: make([]Play, 0, 3)}
}

func (t *Trick) AddCard(p *Player, c Card) {
	if len(t.plays) >= 3 {
		panic("trick already holds 3 cards")
	}
	t.plays = append(t.plays, Play{Player: p, Card: c})
}

func (t *Trick) Size() int {
	return len(t.plays)
}

// FirstCard returns the lead card, or nil if the trick is empty.
func (t *Trick) FirstCard() *Card {
	if len(t.plays) == 0 {
		return nil
	}
	c := t.plays[0].Card
	return &c
}

func (t *Trick) Plays() []Play {
	return append([]Play(nil), t.plays...)
}

func (t *Trick) Cards() []Card {
	out := make([]Card, 0, len(t.plays))
	for _, p := range t.plays {
		out = append(out, p.Card)
	}
	return out
}

func (t *Trick) Clear() {
	t.plays = t.plays[:0]
}

// Winner resolves the trick under the given mode.
func (t *Trick) Winner(mode Mode, trump *Suit) *Player {
	return TrickWinner(t.plays, mode, trump)
}

// TotalPoints sums the card values of the trick under the given mode.
func (t *Trick) TotalPoints(mode Mode, trump *Suit) int {
	total := 0
	for _, p := range t.plays {
		total += p.Card.Value(mode, trump)
	}
	return total
}

// TrickWinner determines the winner of an ordered (player, card) list.
// The first card fixes the lead suit. In trump mode a trump card beats
// any non-trump card; among cards of equal trump status only cards that
// share a suit, or that both follow the lead, are compared by strength.
//
// This is the single winner implementation; Trick.Winner delegates here.
func TrickWinner(plays []Play, mode Mode, trump *Suit) *Player {
	if len(plays) == 0 {
		return nil
	}

	leadSuit := plays[0].Card.Suit
	winner := plays[0].Player
	winning := plays[0].Card

	for _, p := range plays[1:] {
		card := p.Card

		cardIsTrump := mode == ModeTrump && trump != nil && card.Suit == *trump
		winningIsTrump := mode == ModeTrump && trump != nil && winning.Suit == *trump

		if cardIsTrump && !winningIsTrump {
			winner = p.Player
			winning = card
			continue
		}
		if cardIsTrump != winningIsTrump {
			continue
		}

		sameSuit := card.Suit == winning.Suit
		bothFollowLead := card.Suit == leadSuit && winning.Suit == leadSuit
		if !sameSuit && !bothFollowLead {
			continue
		}

		if cardStrength(card, cardIsTrump, mode) > cardStrength(winning, winningIsTrump, mode) {
			winner = p.Player
			winning = card
		}
	}

	return winner
}

// cardStrength orders cards within a comparable pair. Undenufe inverts
// the rank order; trump cards use the jack/nine-topped ladder.
func cardStrength(c Card, isTrump bool, mode Mode) int {
	if mode == ModeUndenufe {
		return 8 - int(c.Rank)
	}

	if isTrump {
		switch c.Rank {
		case RankJack:
			return 20
		case RankNine:
			return 19
		case RankAce:
			return 18
		case RankKing:
			return 17
		case RankQueen:
			return 16
		case RankTen:
			return 15
		case RankEight:
			return 14
		case RankSeven:
			return 13
		case RankSix:
			return 12
		}
	}

	switch c.Rank {
	case RankAce:
		return 18
	case RankKing:
		return 17
	case RankQueen:
		return 16
	case RankJack:
		return 15
	case RankTen:
		return 14
	case RankNine:
		return 13
	case RankEight:
		return 12
	case RankSeven:
		return 11
	case RankSix:
		return 10
	}
	return -1
}
