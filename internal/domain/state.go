package domain

// SeatKind distinguishes human seats from bot seats.
type SeatKind string

const (
	SeatHuman SeatKind = "human"
	SeatBot   SeatKind = "bot"
)

// Seat is one play slot in a room, occupied by a human or a bot.
type Seat struct {
	Kind SeatKind `json:"kind"`
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Hand []Card   `json:"hand"`
}

// Direction values for turn-order traversal.
const (
	DirForward  = 1
	DirBackward = -1
)

// MaxSeats is the room capacity.
const MaxSeats = 4

// Game is the full mutable state of one room. All mutation goes through the
// rule engine and turn controller; callers must serialize access per room.
type Game struct {
	Seats      []*Seat             `json:"seats"`
	Spectators map[string]struct{} `json:"-"`

	// Stack is the discard pile, append-only until flushed.
	Stack []Card `json:"stack"`

	Turn      int `json:"turn"`
	Direction int `json:"direction"`

	// Quantity is the number of cards a legal play must contain. It is set
	// by whichever seat opens an empty stack and survives flushes until the
	// next opener.
	Quantity int `json:"quantity"`

	// Passes counts consecutive passes since the last accepted play or
	// flush. Three passes force an automatic flush.
	Passes int `json:"passes"`

	Started   bool   `json:"started"`
	Narration string `json:"narration"`

	// WinnerID is set once a seat sheds its last card; the round is frozen
	// from that point on.
	WinnerID string `json:"winnerId,omitempty"`
}

// NewGame returns an empty, unstarted room state.
func NewGame() *Game {
	return &Game{
		Spectators: make(map[string]struct{}),
		Direction:  DirForward,
		Quantity:   1,
	}
}

// SeatByID returns the seat with the given id, or nil.
func (g *Game) SeatByID(id string) *Seat {
	for _, s := range g.Seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SeatIndex returns the index of the seat with the given id, or -1.
func (g *Game) SeatIndex(id string) int {
	for i, s := range g.Seats {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CurrentSeat returns the seat holding the turn, or nil before the deal.
func (g *Game) CurrentSeat() *Seat {
	if g.Turn < 0 || g.Turn >= len(g.Seats) {
		return nil
	}
	return g.Seats[g.Turn]
}

// TopCard returns the top of the stack and whether the stack is non-empty.
func (g *Game) TopCard() (Card, bool) {
	if len(g.Stack) == 0 {
		return Card{}, false
	}
	return g.Stack[len(g.Stack)-1], true
}

// HumanCount returns the number of human seats.
func (g *Game) HumanCount() int {
	n := 0
	for _, s := range g.Seats {
		if s.Kind == SeatHuman {
			n++
		}
	}
	return n
}

// Finished reports whether the round has produced a winner.
func (g *Game) Finished() bool {
	return g.WinnerID != ""
}

// HoldsCard reports whether the seat holds the exact (suit, value) card.
func (s *Seat) HoldsCard(c Card) bool {
	for _, h := range s.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// removeCards removes each played card from the hand by (suit, value)
// identity, one occurrence per played card.
func (s *Seat) removeCards(cards []Card) {
	for _, c := range cards {
		for i, h := range s.Hand {
			if h == c {
				s.Hand = append(s.Hand[:i], s.Hand[i+1:]...)
				break
			}
		}
	}
}
