package nakama

import (
	"github.com/gamer-gang/flushed/internal/domain"
)

// PlayRequest is the client payload for the play opcode.
type PlayRequest struct {
	Cards []domain.Card `json:"cards"`
	Pass  bool          `json:"pass"`
	Flush bool          `json:"flush"`
}

// SeatSnapshot is one seat in the public state snapshot. Hands are visible
// to every observer; clients render other seats face-down themselves.
type SeatSnapshot struct {
	Kind string        `json:"kind"`
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Hand []domain.Card `json:"hand"`
}

// StateSnapshot is the full public room state broadcast on every update.
type StateSnapshot struct {
	Seats     []SeatSnapshot `json:"seats"`
	Stack     []domain.Card  `json:"stack"`
	Turn      int            `json:"turn"`
	Direction int            `json:"direction"`
	Quantity  int            `json:"quantity"`
	Passes    int            `json:"passes"`
	Started   bool           `json:"started"`
	Narration string         `json:"narration"`
	WinnerID  string         `json:"winnerId,omitempty"`
}

// ErrorPayload carries a human-readable rejection reason to one client.
type ErrorPayload struct {
	Error string `json:"error"`
}

// ReversePayload announces the new turn direction.
type ReversePayload struct {
	Direction int `json:"direction"`
}

// WinnerPayload announces the seat that shed its last card.
type WinnerPayload struct {
	SeatID string `json:"seatId"`
	Name   string `json:"name"`
}

// Label is the match label advertised for room discovery queries.
type Label struct {
	Open    bool   `json:"open"`
	Game    string `json:"game"`
	Phase   string `json:"phase"`
	Code    string `json:"code"`
	Private bool   `json:"private"`
}

// snapshotGame builds the public snapshot from live game state.
func snapshotGame(g *domain.Game) StateSnapshot {
	snap := StateSnapshot{
		Stack:     append([]domain.Card{}, g.Stack...),
		Turn:      g.Turn,
		Direction: g.Direction,
		Quantity:  g.Quantity,
		Passes:    g.Passes,
		Started:   g.Started,
		Narration: g.Narration,
		WinnerID:  g.WinnerID,
	}
	for _, s := range g.Seats {
		snap.Seats = append(snap.Seats, SeatSnapshot{
			Kind: string(s.Kind),
			ID:   s.ID,
			Name: s.Name,
			Hand: append([]domain.Card{}, s.Hand...),
		})
	}
	return snap
}

// validCards rejects payloads with values or suits outside the deck
// vocabulary before they reach the rule engine.
func validCards(cards []domain.Card) bool {
	for _, c := range cards {
		if !domain.ValidValue(c.Value) {
			return false
		}
		switch c.Suit {
		case domain.SuitClub, domain.SuitDiamond, domain.SuitHeart, domain.SuitSpade:
		default:
			return false
		}
	}
	return true
}
