package engine

import "math/rand"

// DeckSize is the full Eidex deck: four suits, six through ace.
const DeckSize = 36

// HandSize is the per-player deal for three seats.
const HandSize = 12

// Deck is one shuffled permutation of the 36 cards. Deal and
// RevealLastCard must operate on the same shuffle.
type Deck struct {
	cards []Card
}

// NewDeck builds and shuffles a full deck with the given source.
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Deal partitions the deck into three 12-card hands, round-robin.
func (d *Deck) Deal() [3][]Card {
	var hands [3][]Card
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, c := range d.cards {
		hands[i%3] = append(hands[i%3], c)
	}
	return hands
}

// RevealLastCard returns the 36th card of the shuffled order, the
// face-up card that fixes the round's mode.
func (d *Deck) RevealLastCard() Card {
	return d.cards[DeckSize-1]
}

// ModeFor maps the face-up card to the round mode: ace is Obenabe,
// six is Undenufe, anything else makes its suit trump.
func ModeFor(faceUp Card) (Mode, *Suit) {
	switch faceUp.Rank {
	case RankAce:
		return ModeObenabe, nil
	case RankSix:
		return ModeUndenufe, nil
	default:
		s := faceUp.Suit
		return ModeTrump, &s
	}
}
