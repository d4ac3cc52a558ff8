package engine

import "fmt"

type Suit int

type Rank int

const (
	SuitHearts Suit = iota
	SuitRavens
	SuitLizards
	SuitStars
)

// Rank ordinals are fixed six..ace; Undenufe strength is derived from them.
const (
	RankSix Rank = iota
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

var Suits = []Suit{SuitHearts, SuitRavens, SuitLizards, SuitStars}

var Ranks = []Rank{RankSix, RankSeven, RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce}

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "hearts"
	case SuitRavens:
		return "ravens"
	case SuitLizards:
		return "lizards"
	case SuitStars:
		return "stars"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case RankSix:
		return "six"
	case RankSeven:
		return "seven"
	case RankEight:
		return "eight"
	case RankNine:
		return "nine"
	case RankTen:
		return "ten"
	case RankJack:
		return "jack"
	case RankQueen:
		return "queen"
	case RankKing:
		return "king"
	case RankAce:
		return "ace"
	default:
		return "?"
	}
}

type Card struct {
	Suit Suit
	Rank Rank
}

// ID returns the stable wire identifier, e.g. "card-hearts-jack".
// Clients and logs key cards by this string, so it must not change.
func (c Card) ID() string {
	return fmt.Sprintf("card-%s-%s", c.Suit, c.Rank)
}

func (c Card) String() string {
	return fmt.Sprintf("%s %s", c.Suit, c.Rank)
}

// IsTrumpJack reports whether the card is the jack of the trump suit.
func (c Card) IsTrumpJack(trump *Suit) bool {
	return trump != nil && c.Suit == *trump && c.Rank == RankJack
}

// Mode is the per-round scoring and strength regime, fixed by the
// face-up card of the deal.
type Mode int

const (
	ModeTrump Mode = iota
	ModeObenabe
	ModeUndenufe
)

func (m Mode) String() string {
	switch m {
	case ModeTrump:
		return "TRUMP"
	case ModeObenabe:
		return "OBENABE"
	case ModeUndenufe:
		return "UNDENUFE"
	default:
		return "?"
	}
}

// Value returns the point value of the card under the given mode.
// trump is only consulted in trump mode and may be nil otherwise.
//
// The Obenabe eight scoring 8 and the Undenufe six scoring 11 are house
// table entries, not mistakes.
func (c Card) Value(mode Mode, trump *Suit) int {
	if mode == ModeUndenufe {
		switch c.Rank {
		case RankSix:
			return 11
		case RankEight:
			return 8
		case RankTen:
			return 10
		case RankJack:
			return 2
		case RankQueen:
			return 3
		case RankKing:
			return 4
		default:
			return 0
		}
	}

	if mode == ModeTrump && trump != nil && c.Suit == *trump {
		switch c.Rank {
		case RankJack:
			return 20
		case RankNine:
			return 14
		case RankAce:
			return 11
		case RankTen:
			return 10
		case RankKing:
			return 4
		case RankQueen:
			return 3
		default:
			return 0
		}
	}

	if mode == ModeObenabe {
		switch c.Rank {
		case RankAce:
			return 11
		case RankTen:
			return 10
		case RankEight:
			return 8
		case RankKing:
			return 4
		case RankQueen:
			return 3
		case RankJack:
			return 2
		default:
			return 0
		}
	}

	// Non-trump card in a trump round.
	switch c.Rank {
	case RankAce:
		return 11
	case RankTen:
		return 10
	case RankKing:
		return 4
	case RankQueen:
		return 3
	case RankJack:
		return 2
	default:
		return 0
	}
}
