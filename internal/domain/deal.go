package domain

import (
	"errors"
	"math/rand"
)

// ErrNoSeats is returned when dealing into a room with nobody seated.
var ErrNoSeats = errors.New("no seats to deal to")

// openingCard decides who opens the round: the holder of the 3 of spades.
var openingCard = Card{Suit: SuitSpade, Value: "3"}

// Deal shuffles a fresh deck and distributes all 52 cards round-robin across
// the seats, so hand sizes differ by at most one. The holder of the 3 of
// spades opens.
func Deal(g *Game, rng *rand.Rand) error {
	if len(g.Seats) == 0 {
		return ErrNoSeats
	}

	deck := ShuffleDeck(NewDeck(), rng)
	for _, s := range g.Seats {
		s.Hand = s.Hand[:0]
	}
	for i, c := range deck {
		seat := g.Seats[i%len(g.Seats)]
		seat.Hand = append(seat.Hand, c)
	}
	for _, s := range g.Seats {
		SortHand(s.Hand)
	}

	g.Stack = nil
	g.Direction = DirForward
	g.Quantity = 1
	g.Passes = 0
	g.WinnerID = ""
	g.Started = true

	g.Turn = 0
	for i, s := range g.Seats {
		if s.HoldsCard(openingCard) {
			g.Turn = i
			break
		}
	}
	g.Narration = g.Seats[g.Turn].Name + " opens"
	return nil
}
