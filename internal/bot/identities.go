package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// IDPrefix marks bot user ids so id-only call sites (win bookkeeping, room
// teardown) can branch without a type tag.
const IDPrefix = "bot-"

// IsBot reports whether the given user id belongs to a bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, IDPrefix)
}

// Identity is one entry in the bot roster.
type Identity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

var defaultRoster = []Identity{
	{UserID: "bot-breeze", DisplayName: "Breeze"},
	{UserID: "bot-clover", DisplayName: "Clover"},
	{UserID: "bot-fable", DisplayName: "Fable"},
	{UserID: "bot-moss", DisplayName: "Moss"},
}

var (
	roster   = defaultRoster
	loadOnce sync.Once
	loadErr  error
)

// LoadIdentities replaces the built-in roster with profiles from the given
// JSON file. Missing file is not an error; the defaults stay in place.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		valid := loaded[:0]
		for _, id := range loaded {
			if id.UserID == "" || !IsBot(id.UserID) {
				loadErr = fmt.Errorf("bot identity %q must carry the %q prefix", id.UserID, IDPrefix)
				return
			}
			valid = append(valid, id)
		}
		if len(valid) > 0 {
			roster = valid
		}
	})
	return loadErr
}

// ForSeat returns a roster identity for the given seat index, cycling when
// the roster is shorter than the table.
func ForSeat(i int) Identity {
	return roster[i%len(roster)]
}

// DisplayName resolves a bot user id to its roster display name, or the id
// itself when unknown.
func DisplayName(userID string) string {
	for _, id := range roster {
		if id.UserID == userID {
			return id.DisplayName
		}
	}
	return userID
}
