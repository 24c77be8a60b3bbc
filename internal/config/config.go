package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds tunables loaded from the data folder at match init.
type GameConfig struct {
	// BotMinDelaySec and BotMaxDelaySec bound the artificial thinking time
	// before a bot move becomes visible.
	BotMinDelaySec int `json:"bot_min_delay_sec"`
	BotMaxDelaySec int `json:"bot_max_delay_sec"`
	// RoomCodeLength is the length of generated room codes.
	RoomCodeLength int `json:"room_code_length"`
	// InviteTokenTTLMin is the lifetime of room invite tokens in minutes.
	InviteTokenTTLMin int `json:"invite_token_ttl_min"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. A
// missing file leaves the defaults in place.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration with defaults applied for
// unset fields.
func GetGameConfig() GameConfig {
	out := GameConfig{}
	if cfg != nil {
		out = *cfg
	}
	if out.BotMinDelaySec <= 0 {
		out.BotMinDelaySec = 1
	}
	if out.BotMaxDelaySec < out.BotMinDelaySec {
		out.BotMaxDelaySec = out.BotMinDelaySec + 2
	}
	if out.RoomCodeLength <= 0 {
		out.RoomCodeLength = 4
	}
	if out.InviteTokenTTLMin <= 0 {
		out.InviteTokenTTLMin = 60
	}
	return out
}
