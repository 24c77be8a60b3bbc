package config

import "testing"

func TestGetGameConfigDefaults(t *testing.T) {
	c := GetGameConfig()
	if c.BotMinDelaySec <= 0 {
		t.Errorf("BotMinDelaySec = %d, want positive default", c.BotMinDelaySec)
	}
	if c.BotMaxDelaySec < c.BotMinDelaySec {
		t.Errorf("BotMaxDelaySec = %d below min %d", c.BotMaxDelaySec, c.BotMinDelaySec)
	}
	if c.RoomCodeLength <= 0 {
		t.Errorf("RoomCodeLength = %d, want positive default", c.RoomCodeLength)
	}
	if c.InviteTokenTTLMin <= 0 {
		t.Errorf("InviteTokenTTLMin = %d, want positive default", c.InviteTokenTTLMin)
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	if err := LoadGameConfig("does/not/exist.json"); err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
}
