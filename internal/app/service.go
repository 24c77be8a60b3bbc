package app

import (
	"errors"
	"math/rand"
	"time"

	"github.com/gamer-gang/flushed/internal/domain"
)

var (
	ErrAlreadyStarted = errors.New("game already started")
	ErrRoomFull       = errors.New("room is full")
	ErrAlreadySeated  = errors.New("already seated")
)

// Service contains the room use-cases operating on domain state. Callers
// must serialize invocations per game; the service itself holds no per-room
// state beyond the shared rng.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// Join seats the user, or records them as a spectator when the room is full
// or the game already started. Reports whether the user got a seat.
func (s *Service) Join(g *domain.Game, userID, name string) (bool, error) {
	if g.SeatByID(userID) != nil {
		return false, ErrAlreadySeated
	}
	if g.Started || len(g.Seats) >= domain.MaxSeats {
		g.Spectators[userID] = struct{}{}
		return false, nil
	}
	if name == "" {
		name = userID
	}
	g.Seats = append(g.Seats, &domain.Seat{
		Kind: domain.SeatHuman,
		ID:   userID,
		Name: name,
	})
	return true, nil
}

// Start deals a fresh round. Seats must already be padded to capacity by
// the caller; the holder of the 3 of spades opens.
func (s *Service) Start(g *domain.Game) ([]Event, error) {
	if g.Started {
		return nil, ErrAlreadyStarted
	}
	if err := domain.Deal(g, s.rng); err != nil {
		return nil, err
	}
	return []Event{{Kind: EventUpdate, Payload: g}}, nil
}

// Play runs a proposed move through the rule engine and maps the outcome to
// broadcast events. Rejections come back as errors with no events and no
// state change.
func (s *Service) Play(g *domain.Game, actorID string, mv domain.Move) ([]Event, error) {
	out, err := domain.Apply(g, actorID, mv)
	if err != nil {
		return nil, err
	}

	var events []Event
	if out.Flushed {
		events = append(events, Event{Kind: EventFlush})
	}
	if out.Reversed {
		events = append(events, Event{Kind: EventReverse, Payload: ReversePayload{Direction: g.Direction}})
	}
	if out.Winner != nil {
		events = append(events, Event{Kind: EventWinner, Payload: WinnerPayload{
			SeatID: out.Winner.ID,
			Name:   out.Winner.Name,
		}})
	}
	events = append(events, Event{Kind: EventUpdate, Payload: g})
	return events, nil
}

// Leave removes the user's seat or spectator slot. Reports whether any
// human seat remains; a room with none left should be torn down.
func (s *Service) Leave(g *domain.Game, userID string) bool {
	delete(g.Spectators, userID)
	if idx := g.SeatIndex(userID); idx >= 0 {
		g.Seats = append(g.Seats[:idx], g.Seats[idx+1:]...)
		if g.Started && len(g.Seats) > 0 {
			if g.Turn >= len(g.Seats) {
				g.Turn = 0
			}
		}
	}
	return g.HumanCount() > 0
}
