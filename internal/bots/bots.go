package bots

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ryank30/Cosmic-Eidex/internal/engine"
)

// Strategy picks a card for the acting player. Implementations only
// consult the engine's legality and valuation surface, never hidden
// hands.
type Strategy interface {
	ChooseCard(g *engine.Game, p *engine.Player) engine.Card
}

// PlayTurn executes one bot move through the engine's normal entry
// point. It is a no-op when the acting player is not a bot.
func PlayTurn(g *engine.Game, s Strategy) error {
	p := g.CurrentPlayer()
	if !p.IsBot {
		return nil
	}
	card := s.ChooseCard(g, p)
	if err := g.PlayCard(p, card); err != nil {
		return fmt.Errorf("bot %s: %w", p.Name, err)
	}
	return nil
}

// legalCards returns the current legal set, falling back to the whole
// hand when the cache is empty.
func legalCards(p *engine.Player) []engine.Card {
	if len(p.ValidMoves) > 0 {
		return append([]engine.Card(nil), p.ValidMoves...)
	}
	return append([]engine.Card(nil), p.Hand...)
}

// leadCard returns the card constraining the acting player, or nil when
// the player leads a fresh trick.
func leadCard(g *engine.Game) *engine.Card {
	if g.Trick().Size() == 3 {
		// Resolved trick still on the table; the winner leads next.
		return nil
	}
	return g.Trick().FirstCard()
}

// Easy plays a uniform random legal card.
type Easy struct {
	RNG *rand.Rand
}

func NewEasy(seed int64) *Easy {
	return &Easy{RNG: rand.New(rand.NewSource(seed))}
}

func (b *Easy) ChooseCard(g *engine.Game, p *engine.Player) engine.Card {
	legal := legalCards(p)
	return legal[b.RNG.Intn(len(legal))]
}

// Hard leads with the second-highest value card and follows with the
// cheapest card that still beats the lead, shedding its cheapest card
// when it cannot win.
type Hard struct {
	RNG *rand.Rand
}

func NewHard(seed int64) *Hard {
	return &Hard{RNG: rand.New(rand.NewSource(seed))}
}

func (b *Hard) ChooseCard(g *engine.Game, p *engine.Player) engine.Card {
	legal := legalCards(p)
	mode := g.Mode()
	trump := g.TrumpSuit()

	var chosen *engine.Card
	if lead := leadCard(g); lead == nil {
		chosen = chooseLead(legal, mode, trump)
	} else {
		chosen = chooseFollow(legal, *lead, mode, trump)
	}
	if chosen == nil {
		return legal[0]
	}
	return *chosen
}

// chooseLead sorts by value descending and deliberately skips the
// strongest card to keep it for later tricks.
func chooseLead(cards []engine.Card, mode engine.Mode, trump *engine.Suit) *engine.Card {
	if len(cards) == 0 {
		return nil
	}
	sorted := append([]engine.Card(nil), cards...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value(mode, trump) > sorted[j].Value(mode, trump)
	})
	if len(sorted) > 1 {
		return &sorted[1]
	}
	return &sorted[0]
}

func chooseFollow(cards []engine.Card, lead engine.Card, mode engine.Mode, trump *engine.Suit) *engine.Card {
	leadValue := lead.Value(mode, trump)

	beating := make([]engine.Card, 0, len(cards))
	for _, c := range cards {
		inSuit := c.Suit == lead.Suit || (trump != nil && c.Suit == *trump)
		if inSuit && c.Value(mode, trump) > leadValue {
			beating = append(beating, c)
		}
	}
	if len(beating) > 0 {
		return cheapest(beating, mode, trump)
	}
	return cheapest(cards, mode, trump)
}

func cheapest(cards []engine.Card, mode engine.Mode, trump *engine.Suit) *engine.Card {
	if len(cards) == 0 {
		return nil
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Value(mode, trump) < best.Value(mode, trump) {
			best = c
		}
	}
	return &best
}
