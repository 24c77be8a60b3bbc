package domain

import "testing"

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		turn      int
		direction int
		n         int
		want      int
	}{
		{"forward middle", 1, DirForward, 4, 2},
		{"forward wraps at end", 3, DirForward, 4, 0},
		{"backward middle", 2, DirBackward, 4, 1},
		{"backward wraps at start", 0, DirBackward, 4, 3},
		{"two seats forward", 1, DirForward, 2, 0},
		{"two seats backward", 0, DirBackward, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Advance(tt.turn, tt.direction, tt.n); got != tt.want {
				t.Errorf("Advance(%d, %d, %d) = %d, want %d", tt.turn, tt.direction, tt.n, got, tt.want)
			}
		})
	}
}

func TestAdvanceInverse(t *testing.T) {
	for n := 2; n <= 4; n++ {
		for turn := 0; turn < n; turn++ {
			forward := Advance(turn, DirForward, n)
			if back := Advance(forward, DirBackward, n); back != turn {
				t.Errorf("n=%d: Advance(Advance(%d, +1), -1) = %d, want %d", n, turn, back, turn)
			}
		}
	}
}
