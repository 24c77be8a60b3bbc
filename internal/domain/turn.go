package domain

// Advance returns the next turn cursor among n seats moving in direction,
// wrapping at both ends. It is its own inverse under direction negation.
func Advance(turn, direction, n int) int {
	switch {
	case turn == 0 && direction == DirBackward:
		return n - 1
	case turn == n-1 && direction == DirForward:
		return 0
	default:
		return turn + direction
	}
}

// checkWin freezes the round if the seat holding the turn has shed its last
// card. Returns the winning seat, or nil.
func (g *Game) checkWin() *Seat {
	seat := g.CurrentSeat()
	if seat == nil || len(seat.Hand) > 0 {
		return nil
	}
	g.WinnerID = seat.ID
	g.Narration = seat.Name + " wins!"
	return seat
}

// advanceTurn moves the cursor one seat and resolves pass exhaustion: once
// three consecutive passes have accumulated the pile is flushed
// automatically. Reports whether that flush happened.
func (g *Game) advanceTurn() bool {
	g.Turn = Advance(g.Turn, g.Direction, len(g.Seats))
	if g.Passes >= 3 {
		g.flush()
		return true
	}
	return false
}

// flush clears the pile. Quantity is left for the next opener to set; the
// caller decides whether the acting seat keeps the turn.
func (g *Game) flush() {
	g.Stack = nil
	g.Passes = 0
}
