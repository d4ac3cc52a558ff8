package bots

import (
	"math/rand"
	"testing"

	"github.com/ryank30/Cosmic-Eidex/internal/engine"
)

func botGame(t *testing.T, seed int64) (*engine.Game, []*engine.Player) {
	t.Helper()
	players := []*engine.Player{
		engine.NewPlayer("bot-a", true),
		engine.NewPlayer("bot-b", true),
		engine.NewPlayer("bot-c", true),
	}
	g, err := engine.NewGame("bot-room", players, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.StartRound()
	return g, players
}

func contains(cards []engine.Card, c engine.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// Every card either strategy picks must be in the acting player's
// current legal set, across many shuffles and full matches.
func TestBotChoicesAreAlwaysLegal(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		g, players := botGame(t, seed)
		strategies := map[string]Strategy{
			players[0].Name: NewEasy(seed + 10),
			players[1].Name: NewHard(seed + 20),
			players[2].Name: NewHard(seed + 30),
		}

		for step := 0; step < 50000 && g.IsActive(); step++ {
			p := g.CurrentPlayer()
			card := strategies[p.Name].ChooseCard(g, p)
			if len(p.ValidMoves) > 0 && !contains(p.ValidMoves, card) {
				t.Fatalf("seed %d: %s chose %s outside legal set", seed, p.Name, card.ID())
			}
			if err := g.PlayCard(p, card); err != nil {
				t.Fatalf("seed %d: %s move rejected: %v", seed, p.Name, err)
			}
		}
		if g.IsActive() {
			t.Fatalf("seed %d: match did not terminate", seed)
		}
		winner := g.Winner()
		if winner == nil {
			t.Fatalf("seed %d: finished match without winner", seed)
		}
		if winner.WinPoints < engine.WinPointTarget {
			t.Fatalf("seed %d: winner %s has %d win-points", seed, winner.Name, winner.WinPoints)
		}
	}
}

func TestPlayTurnSkipsHumans(t *testing.T) {
	players := []*engine.Player{
		engine.NewPlayer("human", false),
		engine.NewPlayer("bot-b", true),
		engine.NewPlayer("bot-c", true),
	}
	g, err := engine.NewGame("mixed", players, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.StartRound()

	handBefore := len(players[0].Hand)
	if err := PlayTurn(g, NewEasy(1)); err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if len(players[0].Hand) != handBefore {
		t.Fatal("PlayTurn must not act for a human seat")
	}
}

func TestHardLeadsSecondHighest(t *testing.T) {
	cards := []engine.Card{
		{Suit: engine.SuitStars, Rank: engine.RankSix},
		{Suit: engine.SuitStars, Rank: engine.RankAce},
		{Suit: engine.SuitStars, Rank: engine.RankKing},
	}
	chosen := chooseLead(cards, engine.ModeObenabe, nil)
	if chosen == nil || chosen.Rank != engine.RankKing {
		t.Fatalf("lead = %v, want the king (second-highest value)", chosen)
	}
}

func TestHardLeadsOnlyCard(t *testing.T) {
	cards := []engine.Card{{Suit: engine.SuitStars, Rank: engine.RankTen}}
	chosen := chooseLead(cards, engine.ModeObenabe, nil)
	if chosen == nil || *chosen != cards[0] {
		t.Fatalf("lead = %v, want the only card", chosen)
	}
}

func TestHardFollowsCheapestWinning(t *testing.T) {
	lead := engine.Card{Suit: engine.SuitStars, Rank: engine.RankKing} // 4
	cards := []engine.Card{
		{Suit: engine.SuitStars, Rank: engine.RankAce}, // 11
		{Suit: engine.SuitStars, Rank: engine.RankTen}, // 10
		{Suit: engine.SuitStars, Rank: engine.RankSix}, // 0
	}
	chosen := chooseFollow(cards, lead, engine.ModeObenabe, nil)
	if chosen == nil || chosen.Rank != engine.RankTen {
		t.Fatalf("follow = %v, want the ten (cheapest card beating the king)", chosen)
	}
}

func TestHardShedsCheapestWhenItCannotWin(t *testing.T) {
	lead := engine.Card{Suit: engine.SuitStars, Rank: engine.RankAce} // 11
	cards := []engine.Card{
		{Suit: engine.SuitStars, Rank: engine.RankKing}, // 4
		{Suit: engine.SuitStars, Rank: engine.RankSix},  // 0
	}
	chosen := chooseFollow(cards, lead, engine.ModeObenabe, nil)
	if chosen == nil || chosen.Rank != engine.RankSix {
		t.Fatalf("follow = %v, want the six (cheapest shed)", chosen)
	}
}

func TestHardTrumpsWhenVoidInLeadSuit(t *testing.T) {
	trump := engine.SuitHearts
	lead := engine.Card{Suit: engine.SuitStars, Rank: engine.RankKing} // 4
	cards := []engine.Card{
		{Suit: engine.SuitHearts, Rank: engine.RankNine}, // trump, 14
		{Suit: engine.SuitRavens, Rank: engine.RankSix},  // 0
	}
	chosen := chooseFollow(cards, lead, engine.ModeTrump, &trump)
	if chosen == nil || chosen.Suit != engine.SuitHearts {
		t.Fatalf("follow = %v, want the trump nine", chosen)
	}
}
