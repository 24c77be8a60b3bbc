package nakama

import (
	"math/rand"
	"sync"
)

// codeAlphabet avoids ambiguous characters in typed room codes.
const codeAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// RoomCodes maps short join codes to match ids. Codes are generated with
// collision re-roll; stale entries are released when a lookup discovers the
// match is gone.
type RoomCodes struct {
	mu    sync.Mutex
	rng   *rand.Rand
	codes map[string]string
}

// NewRoomCodes returns an empty registry using the given rng.
func NewRoomCodes(rng *rand.Rand) *RoomCodes {
	return &RoomCodes{
		rng:   rng,
		codes: make(map[string]string),
	}
}

// Reserve generates a unique code of the given length and claims it. The
// code maps to an empty match id until Bind is called.
func (r *RoomCodes) Reserve(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for attempt := 0; ; attempt++ {
		// After enough collisions the space is too dense; grow the code.
		code := r.generate(length + attempt/8)
		if _, taken := r.codes[code]; !taken {
			r.codes[code] = ""
			return code
		}
	}
}

// Bind associates a reserved code with its match id.
func (r *RoomCodes) Bind(code, matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[code] = matchID
}

// Lookup resolves a code to its match id.
func (r *RoomCodes) Lookup(code string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matchID, ok := r.codes[code]
	if !ok || matchID == "" {
		return "", false
	}
	return matchID, true
}

// Release frees a code, typically after its match has terminated.
func (r *RoomCodes) Release(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, code)
}

func (r *RoomCodes) generate(length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = codeAlphabet[r.rng.Intn(len(codeAlphabet))]
	}
	return string(out)
}
