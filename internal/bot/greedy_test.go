package bot

import (
	"testing"

	"github.com/gamer-gang/flushed/internal/domain"
)

func card(v domain.Value, s domain.Suit) domain.Card {
	return domain.Card{Suit: s, Value: v}
}

func botGame(hand []domain.Card) *domain.Game {
	g := domain.NewGame()
	g.Seats = append(g.Seats,
		&domain.Seat{Kind: domain.SeatBot, ID: "bot-breeze", Name: "Breeze", Hand: hand},
		&domain.Seat{Kind: domain.SeatHuman, ID: "h1", Name: "Alice"},
	)
	g.Started = true
	return g
}

func TestGreedyPlaysLowestEligibleCard(t *testing.T) {
	tests := []struct {
		name  string
		hand  []domain.Card
		stack []domain.Card
		want  domain.Card
		pass  bool
	}{
		{
			name: "empty stack plays weakest card",
			hand: []domain.Card{card("4", domain.SuitClub), card("K", domain.SuitHeart)},
			want: card("4", domain.SuitClub),
		},
		{
			name:  "skips cards below the floor",
			hand:  []domain.Card{card("4", domain.SuitClub), card("9", domain.SuitHeart), card("A", domain.SuitSpade)},
			stack: []domain.Card{card("8", domain.SuitDiamond)},
			want:  card("9", domain.SuitHeart),
		},
		{
			name:  "equal strength is eligible",
			hand:  []domain.Card{card("8", domain.SuitClub)},
			stack: []domain.Card{card("8", domain.SuitDiamond)},
			want:  card("8", domain.SuitClub),
		},
		{
			name:  "passes when nothing beats the top",
			hand:  []domain.Card{card("4", domain.SuitClub), card("9", domain.SuitHeart)},
			stack: []domain.Card{card("2", domain.SuitSpade)},
			pass:  true,
		},
	}

	brain := NewBrain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := botGame(tt.hand)
			g.Stack = tt.stack

			move, err := brain.CalculateMove(g, g.Seats[0])
			if err != nil {
				t.Fatalf("CalculateMove error: %v", err)
			}
			if tt.pass {
				if !move.Pass {
					t.Fatalf("move = %+v, want pass", move)
				}
				return
			}
			if move.Pass || len(move.Cards) != 1 {
				t.Fatalf("move = %+v, want a single card", move)
			}
			if move.Cards[0] != tt.want {
				t.Fatalf("played %v, want %v", move.Cards[0], tt.want)
			}
		})
	}
}

func TestGreedyPassesOnMultiCardQuantity(t *testing.T) {
	g := botGame([]domain.Card{
		card("9", domain.SuitClub), card("9", domain.SuitHeart),
	})
	g.Stack = []domain.Card{card("5", domain.SuitClub), card("5", domain.SuitDiamond)}
	g.Quantity = 2

	move, err := NewBrain().CalculateMove(g, g.Seats[0])
	if err != nil {
		t.Fatalf("CalculateMove error: %v", err)
	}
	// Bots never attempt multi-card plays, even when they could.
	if !move.Pass {
		t.Fatalf("move = %+v, want pass", move)
	}
}

func TestGreedyIsDeterministic(t *testing.T) {
	hand := []domain.Card{card("J", domain.SuitSpade), card("5", domain.SuitClub), card("5", domain.SuitHeart)}
	brain := NewBrain()
	var first domain.Move
	for i := 0; i < 5; i++ {
		g := botGame(append([]domain.Card{}, hand...))
		move, err := brain.CalculateMove(g, g.Seats[0])
		if err != nil {
			t.Fatalf("CalculateMove error: %v", err)
		}
		if i == 0 {
			first = move
			continue
		}
		if move.Pass != first.Pass || move.Cards[0] != first.Cards[0] {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, move, first)
		}
	}
}

func TestAgentPassesWhenSeatVanished(t *testing.T) {
	g := botGame(nil)
	agent := NewAgent("bot-gone")
	move, err := agent.Play(g)
	if err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if !move.Pass {
		t.Fatalf("move = %+v, want pass for vanished seat", move)
	}
}

func TestIsBot(t *testing.T) {
	if !IsBot("bot-breeze") {
		t.Error("bot-breeze should be a bot id")
	}
	if IsBot("alice") {
		t.Error("alice should not be a bot id")
	}
}

func TestForSeatCycles(t *testing.T) {
	a, b := ForSeat(0), ForSeat(len(roster))
	if a != b {
		t.Errorf("ForSeat should cycle: %+v != %+v", a, b)
	}
}
