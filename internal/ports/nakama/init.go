package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/gamer-gang/flushed/internal/app"
	"github.com/gamer-gang/flushed/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and the match handler into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("InitModule: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	deps := &rpcDeps{
		codes: NewRoomCodes(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if secret := env["flushed_token_secret"]; secret != "" {
		deps.tokens = app.NewRoomTokenService(secret, "flushed", time.Duration(cfg.InviteTokenTTLMin)*time.Minute)
	} else {
		logger.Warn("InitModule: flushed_token_secret not set; private rooms disabled.")
	}

	if err := RegisterRPCs(initializer, deps); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameFlushed, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	logger.Info("Flushed Go module loaded.")
	return nil
}
