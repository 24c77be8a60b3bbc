package bot

import (
	"github.com/gamer-gang/flushed/internal/domain"
)

// GreedyBrain plays the weakest single card that meets the stack floor.
// Bots never attempt multi-card combinations: whenever the required play
// size is above one they pass.
type GreedyBrain struct{}

// NewBrain returns the standard bot decision procedure.
func NewBrain() Brain {
	return &GreedyBrain{}
}

// CalculateMove scans the hand in ascending strength and plays the first
// card at or above the current top of the stack, or any card when the stack
// is empty. No eligible card means a pass.
func (*GreedyBrain) CalculateMove(game *domain.Game, seat *domain.Seat) (domain.Move, error) {
	if seat == nil || len(seat.Hand) == 0 {
		return domain.Move{Pass: true}, nil
	}
	if game.Quantity > 1 {
		return domain.Move{Pass: true}, nil
	}

	floor := -1
	if top, ok := game.TopCard(); ok {
		floor = domain.Strength(top.Value)
	}

	// Hands are kept sorted ascending after the deal, but re-sorting keeps
	// the scan deterministic even if a caller disturbed the order.
	hand := append([]domain.Card{}, seat.Hand...)
	domain.SortHand(hand)
	for _, c := range hand {
		if domain.Strength(c.Value) >= floor {
			return domain.Move{Cards: []domain.Card{c}}, nil
		}
	}

	return domain.Move{Pass: true}, nil
}
