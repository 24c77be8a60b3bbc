package app

// EventKind identifies emitted game events for transport dispatch.
type EventKind string

const (
	EventUpdate  EventKind = "update"
	EventFlush   EventKind = "flush"
	EventReverse EventKind = "reverse"
	EventWinner  EventKind = "winner"
)

// Event is an app-level event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// ReversePayload reports the new traversal direction after a match reversal.
type ReversePayload struct {
	Direction int
}

// WinnerPayload names the seat that shed its last card.
type WinnerPayload struct {
	SeatID string
	Name   string
}
