package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/gamer-gang/flushed/internal/app"
	"github.com/gamer-gang/flushed/internal/bot"
	"github.com/gamer-gang/flushed/internal/config"
	"github.com/gamer-gang/flushed/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one room. Nakama
// serializes all handler callbacks per match, so every mutation below runs
// single-writer.
type MatchState struct {
	Code    string `json:"code"`
	Private bool   `json:"private"`

	OwnerID string `json:"owner_id"`

	Tick         int64 `json:"tick"`
	BotWaitUntil int64 `json:"bot_wait_until"` // tick at which the pending bot move fires
	BotMinDelay  int   `json:"bot_min_delay"`  // seconds a bot waits at least
	BotMaxDelay  int   `json:"bot_max_delay"`  // seconds a bot waits at most

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"`
	Bots      map[string]*bot.Agent       `json:"-"`
	Tokens    *app.RoomTokenService       `json:"-"`
	rng       *rand.Rand
}

func (ms *MatchState) phase() string {
	switch {
	case ms.Game.Finished():
		return "ended"
	case ms.Game.Started:
		return "playing"
	default:
		return "lobby"
	}
}

func (ms *MatchState) open() bool {
	return !ms.Game.Started && len(ms.Game.Seats) < domain.MaxSeats
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit creates the empty room. The room gains seats as humans join and
// is padded with bots when the owner starts the game.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(nil),
		Game:        domain.NewGame(),
		Bots:        make(map[string]*bot.Agent),
		BotMinDelay: cfg.BotMinDelaySec,
		BotMaxDelay: cfg.BotMaxDelaySec,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if code, ok := params["code"].(string); ok {
		state.Code = code
	}
	if private, ok := params["private"].(bool); ok {
		state.Private = private
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["flushed_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["flushed_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= state.BotMinDelay {
			state.BotMaxDelay = i
		}
	}
	if secret, ok := env["flushed_token_secret"]; ok && secret != "" {
		state.Tokens = app.NewRoomTokenService(secret, "flushed", time.Duration(cfg.InviteTokenTTLMin)*time.Minute)
	}

	labelBytes, err := json.Marshal(Label{
		Open:    true,
		Game:    "flushed",
		Phase:   "lobby",
		Code:    state.Code,
		Private: state.Private,
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one loop per second; bot delays are counted in ticks
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt gates entry. Private rooms demand a valid invite token;
// full or started rooms still admit the presence, which MatchJoin demotes
// to spectator.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Private {
		if matchState.Tokens == nil {
			return state, false, "private rooms are not enabled"
		}
		claims, err := matchState.Tokens.VerifyToken(metadata["token"])
		if err != nil {
			logger.Warn("MatchJoinAttempt: Invalid invite token from %s: %v", presence.GetUserId(), err)
			return state, false, "invalid invite token"
		}
		if claims.Room != matchState.Code {
			return state, false, "invite token is for another room"
		}
	}

	return state, true, ""
}

// MatchJoin seats each presence, or records it as a spectator when the room
// is full or already playing.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		seated, err := matchState.App.Join(matchState.Game, p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: %s could not join: %v", p.GetUserId(), err)
			continue
		}
		if !seated {
			logger.Debug("MatchJoin: %s joined as spectator", p.GetUserId())
		}
	}

	mh.electOwner(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastUpdate(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave frees seats and tears the room down once no human remains.
// Bots and spectators alone do not keep a room alive.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	humansLeft := true
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		humansLeft = matchState.App.Leave(matchState.Game, p.GetUserId())
	}

	if !humansLeft {
		logger.Info("MatchLeave: Terminating room %s with no humans.", matchState.Code)
		return nil
	}

	mh.electOwner(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastUpdate(matchState, dispatcher, logger)

	return matchState
}

// MatchLoop drains queued client messages in arrival order, then runs the
// bot scheduler. This is the room's single serialization point.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpPlay:
			mh.handlePlay(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processBots(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

// electOwner keeps ownership on the first human seat.
func (mh *matchHandler) electOwner(state *MatchState, logger runtime.Logger) {
	if seat := state.Game.SeatByID(state.OwnerID); seat != nil && seat.Kind == domain.SeatHuman {
		return
	}
	state.OwnerID = ""
	for _, s := range state.Game.Seats {
		if s.Kind == domain.SeatHuman {
			state.OwnerID = s.ID
			logger.Debug("Owner set to %s.", s.ID)
			return
		}
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if senderID != state.OwnerID {
		logger.Warn("StartGame: %s tried to start but is not owner (%s)", senderID, state.OwnerID)
		mh.sendError(state, dispatcher, logger, senderID, "only the room owner can start")
		return
	}
	if state.Game.HumanCount() == 0 {
		mh.sendError(state, dispatcher, logger, senderID, "no players seated")
		return
	}

	// Pad empty seats with bots before the deal.
	for i := len(state.Game.Seats); i < domain.MaxSeats; i++ {
		identity := bot.ForSeat(i)
		state.Game.Seats = append(state.Game.Seats, &domain.Seat{
			Kind: domain.SeatBot,
			ID:   identity.UserID,
			Name: identity.DisplayName,
		})
		state.Bots[identity.UserID] = bot.NewAgent(identity.UserID)
		logger.Info("StartGame: Added bot %s to seat %d", identity.UserID, i)
	}

	events, err := state.App.Start(state.Game)
	if err != nil {
		logger.Warn("StartGame: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}

	state.BotWaitUntil = 0
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePlay(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request PlayRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handlePlay: Bad payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, "malformed play payload")
		return
	}
	if !validCards(request.Cards) {
		mh.sendError(state, dispatcher, logger, senderID, "unknown card in play")
		return
	}

	events, err := state.App.Play(state.Game, senderID, domain.Move{
		Cards:      request.Cards,
		Pass:       request.Pass,
		FlushClaim: request.Flush,
	})
	if err != nil {
		logger.Debug("handlePlay: %s rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}

	// A human acted, so any pending bot schedule belongs to a stale turn.
	state.BotWaitUntil = 0

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Game.Finished() {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// processBots drives bot turns. A bot move is scheduled a few ticks ahead
// to model thinking time and re-validated when it fires, so a room or seat
// that vanished during the delay is a clean no-op.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g == nil || !g.Started || g.Finished() {
		state.BotWaitUntil = 0
		return
	}

	seat := g.CurrentSeat()
	if seat == nil || seat.Kind != domain.SeatBot {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += state.rng.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s acts at tick %d", seat.ID, state.BotWaitUntil)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[seat.ID]
	if !exists {
		agent = bot.NewAgent(seat.ID)
		state.Bots[seat.ID] = agent
	}

	move, err := agent.Play(g)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", seat.ID, err)
		move = domain.Move{Pass: true}
	}

	events, err := state.App.Play(g, seat.ID, move)
	if err != nil {
		logger.Error("processBots: Bot %s move rejected: %v", seat.ID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if g.Finished() {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// broadcastEvent converts an app event into an opcode broadcast, honoring
// targeted recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventUpdate:
		opCode = OpUpdate
		payload = snapshotGame(state.Game)
	case app.EventFlush:
		opCode = OpFlush
		payload = struct{}{}
	case app.EventReverse:
		opCode = OpReverse
		p := ev.Payload.(app.ReversePayload)
		payload = ReversePayload{Direction: p.Direction}
	case app.EventWinner:
		opCode = OpWinner
		p := ev.Payload.(app.WinnerPayload)
		payload = WinnerPayload{SeatID: p.SeatID, Name: p.Name}
	default:
		logger.Warn("broadcastEvent: Unknown event kind %s", ev.Kind)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcastEvent: Failed to marshal %s: %v", ev.Kind, err)
		return
	}

	var targets []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, id := range ev.Recipients {
			if p, ok := state.Presences[id]; ok {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			return
		}
	}
	if err := dispatcher.BroadcastMessage(opCode, data, targets, nil, true); err != nil {
		logger.Error("broadcastEvent: Broadcast failed: %v", err)
	}
}

// broadcastUpdate sends a fresh public snapshot to everyone.
func (mh *matchHandler) broadcastUpdate(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.broadcastEvent(state, dispatcher, logger, app.Event{Kind: app.EventUpdate})
}

// sendError surfaces a rejection to the acting connection only; state is
// untouched and nothing is broadcast.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, reason string) {
	p, ok := state.Presences[userID]
	if !ok {
		return
	}
	data, err := json.Marshal(ErrorPayload{Error: reason})
	if err != nil {
		logger.Error("sendError: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{p}, nil, true); err != nil {
		logger.Error("sendError: Send failed: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(Label{
		Open:    state.open(),
		Game:    "flushed",
		Phase:   state.phase(),
		Code:    state.Code,
		Private: state.Private,
	})
	if err != nil {
		logger.Error("updateLabel: Failed to marshal label: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Update failed: %v", err)
	}
}
