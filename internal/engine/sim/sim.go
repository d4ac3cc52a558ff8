// Package sim runs seeded random self-play against the engine and
// checks state invariants after every move. Tests use it to shake out
// rule regressions across many shuffles.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/ryank30/Cosmic-Eidex/internal/engine"
)

type MoveRecord struct {
	Step   int
	Player string
	CardID string
}

// RunSelfPlay plays random legal moves from the given seed until the
// match ends or maxSteps is reached. It returns an error on a rejected
// move or a broken invariant.
func RunSelfPlay(seed int64, maxSteps int) error {
	rng := rand.New(rand.NewSource(seed))
	players := []*engine.Player{
		engine.NewPlayer("sim-a", false),
		engine.NewPlayer("sim-b", false),
		engine.NewPlayer("sim-c", false),
	}
	g, err := engine.NewGame("sim", players, rng)
	if err != nil {
		return err
	}
	g.StartRound()

	records := []MoveRecord{}
	for step := 0; step < maxSteps; step++ {
		if !g.IsActive() {
			if g.Winner() == nil {
				return failure(seed, step, records, "inactive game without winner")
			}
			return nil
		}
		p := g.CurrentPlayer()
		legal := p.ValidMoves
		if len(legal) == 0 {
			return failure(seed, step, records, fmt.Sprintf("no legal moves for %s", p.Name))
		}
		card := legal[rng.Intn(len(legal))]
		if err := g.PlayCard(p, card); err != nil {
			return failure(seed, step, records, fmt.Sprintf("move rejected: %v", err))
		}
		records = append(records, MoveRecord{Step: step, Player: p.Name, CardID: card.ID()})
		if err := checkInvariants(g); err != nil {
			return failure(seed, step, records, err.Error())
		}
	}
	return failure(seed, maxSteps, records, "match did not terminate")
}

func checkInvariants(g *engine.Game) error {
	if g.Trick().Size() > 3 {
		return fmt.Errorf("trick holds %d cards", g.Trick().Size())
	}
	seen := map[string]bool{}
	for _, p := range g.Players() {
		if len(p.Hand) > engine.HandSize {
			return fmt.Errorf("%s holds %d cards", p.Name, len(p.Hand))
		}
		if p.RoundPts < 0 {
			return fmt.Errorf("%s has negative round points", p.Name)
		}
		for _, c := range p.Hand {
			if seen[c.ID()] {
				return fmt.Errorf("duplicate card %s across hands", c.ID())
			}
			seen[c.ID()] = true
		}
	}
	for _, play := range g.Trick().Plays() {
		if seen[play.Card.ID()] {
			return fmt.Errorf("trick card %s still in a hand", play.Card.ID())
		}
	}
	return nil
}

func failure(seed int64, step int, records []MoveRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	trail := ""
	for _, r := range records[start:] {
		trail += fmt.Sprintf("[s%d %s] %s\n", r.Step, r.Player, r.CardID)
	}
	return fmt.Errorf("seed=%d step=%d reason=%s\nlast moves:\n%s", seed, step, reason, trail)
}
