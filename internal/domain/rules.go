package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotStarted    = errors.New("game not started")
	ErrRoundOver     = errors.New("round is over")
	ErrSeatNotFound  = errors.New("seat not found")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoCards       = errors.New("illegal move: no cards played")
	ErrMixedValues   = errors.New("illegal move: mixed values")
	ErrValueTooLow   = errors.New("illegal move: value too low")
	ErrInvalidFlush  = errors.New("illegal move: not a valid flush")
	ErrWrongQuantity = errors.New("illegal move: wrong card count")
	ErrCardNotHeld   = errors.New("illegal move: card not held")
)

// Move is a proposed action by one seat.
type Move struct {
	Cards []Card
	// Pass skips the turn without playing; Cards must be empty.
	Pass bool
	// FlushClaim asserts the played cards match the top of the stack and
	// the pile should flush. Claims are accepted out of turn.
	FlushClaim bool
}

// Outcome reports the externally visible effects of an accepted move.
type Outcome struct {
	Passed   bool
	Flushed  bool
	Reversed bool
	Winner   *Seat // non-nil once a seat sheds its last card
}

// Apply validates a proposed move against the live game and, if legal,
// commits its effects to the stack and the acting seat's hand, then runs
// turn control. On rejection the game is left untouched.
func Apply(g *Game, seatID string, mv Move) (Outcome, error) {
	if !g.Started {
		return Outcome{}, ErrNotStarted
	}
	if g.Finished() {
		return Outcome{}, ErrRoundOver
	}
	idx := g.SeatIndex(seatID)
	if idx < 0 {
		return Outcome{}, ErrSeatNotFound
	}
	seat := g.Seats[idx]

	// A pure pass. Claims model calling a matching discard and need cards,
	// so passes always require turn ownership.
	if mv.Pass {
		if idx != g.Turn {
			return Outcome{}, ErrNotYourTurn
		}
		g.Passes++
		g.Narration = seat.Name + " passed"
		out := Outcome{Passed: true}
		out.Flushed = g.advanceTurn()
		return out, nil
	}

	if len(mv.Cards) == 0 {
		return Outcome{}, ErrNoCards
	}
	if idx != g.Turn && !mv.FlushClaim {
		return Outcome{}, ErrNotYourTurn
	}

	value := mv.Cards[0].Value
	for _, c := range mv.Cards[1:] {
		if c.Value != value {
			return Outcome{}, ErrMixedValues
		}
	}

	if top, ok := g.TopCard(); ok && Strength(value) < Strength(top.Value) {
		return Outcome{}, ErrValueTooLow
	}

	// An explicit flush claim matches the tail of the stack; the claimed
	// cards stay in the claimant's hand and the turn cursor is untouched.
	if mv.FlushClaim {
		n := len(mv.Cards)
		if n > len(g.Stack) {
			return Outcome{}, ErrInvalidFlush
		}
		for _, c := range g.Stack[len(g.Stack)-n:] {
			if c.Value != value {
				return Outcome{}, ErrInvalidFlush
			}
		}
		g.flush()
		g.Narration = seat.Name + " flushed the pile"
		return Outcome{Flushed: true}, nil
	}

	// The opening play on an empty stack locks in the play size until the
	// next flush. Committed only once the move is known to be legal so a
	// rejection leaves state untouched.
	quantity := g.Quantity
	if len(g.Stack) == 0 {
		quantity = len(mv.Cards)
	}

	// Completing a bomb of four always flushes, even when the play size
	// would otherwise be rejected.
	if isQuadCompletion(g.Stack, mv.Cards, value) {
		if !seat.holdsAll(mv.Cards) {
			return Outcome{}, ErrCardNotHeld
		}
		g.Quantity = quantity
		seat.removeCards(mv.Cards)
		g.flush()
		g.Narration = seat.Name + " completed a bomb of " + string(value) + "s"
		out := Outcome{Flushed: true}
		out.Winner = g.checkWin()
		return out, nil
	}

	if len(mv.Cards) != quantity {
		return Outcome{}, ErrWrongQuantity
	}

	if !seat.holdsAll(mv.Cards) {
		return Outcome{}, ErrCardNotHeld
	}
	g.Quantity = quantity
	seat.removeCards(mv.Cards)

	// The bomb value clears the pile outright and the acting seat opens the
	// next one.
	if Strength(value) == MaxStrength {
		g.flush()
		g.Narration = seat.Name + " played " + describeCards(mv.Cards)
		out := Outcome{Flushed: true}
		out.Winner = g.checkWin()
		return out, nil
	}

	prevTop, hadTop := g.TopCard()
	g.Stack = append(g.Stack, mv.Cards...)
	g.Narration = seat.Name + " played " + describeCards(mv.Cards)

	out := Outcome{}
	if hadTop && prevTop.Value == value {
		g.Direction *= -1
		g.Narration += " (reversed)"
		out.Reversed = true
	}

	g.Passes = 0
	if out.Winner = g.checkWin(); out.Winner != nil {
		return out, nil
	}
	g.advanceTurn()
	return out, nil
}

// isQuadCompletion reports whether the played cards together with the tail
// of the stack form four of a kind.
func isQuadCompletion(stack, played []Card, value Value) bool {
	need := 4 - len(played)
	if need < 0 || need > len(stack) {
		return false
	}
	for _, c := range stack[len(stack)-need:] {
		if c.Value != value {
			return false
		}
	}
	return true
}

// holdsAll reports whether the seat holds every played card, counting
// duplicates.
func (s *Seat) holdsAll(cards []Card) bool {
	need := make(map[Card]int, len(cards))
	for _, c := range cards {
		need[c]++
	}
	for c, n := range need {
		have := 0
		for _, h := range s.Hand {
			if h == c {
				have++
			}
		}
		if have < n {
			return false
		}
	}
	return true
}

func describeCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
