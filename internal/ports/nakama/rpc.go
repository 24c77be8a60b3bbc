package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/gamer-gang/flushed/internal/app"
	"github.com/gamer-gang/flushed/internal/config"
	"github.com/gamer-gang/flushed/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	errUnknownRoomCode = errors.New("invalid room code")
	errNoUserID        = errors.New("rpc requires an authenticated user")
)

// rpcDeps are the shared collaborators injected into every RPC. The room
// code registry is deliberately owned here rather than living as a package
// singleton.
type rpcDeps struct {
	codes  *RoomCodes
	tokens *app.RoomTokenService
}

// CreateRoomRequest is the optional payload for the create_room RPC.
type CreateRoomRequest struct {
	Name    string `json:"name"`
	Private bool   `json:"private"`
}

// CreateRoomResponse returns the new room's join code and match id. For
// private rooms it includes an invite token for the creator to share.
type CreateRoomResponse struct {
	Code    string `json:"code"`
	MatchID string `json:"match_id"`
	Token   string `json:"token,omitempty"`
}

// JoinRoomRequest resolves a join code.
type JoinRoomRequest struct {
	Code string `json:"code"`
}

// JoinRoomResponse carries the match id to join.
type JoinRoomResponse struct {
	MatchID string `json:"match_id"`
}

// RoomTokenRequest asks for an invite token for a room code.
type RoomTokenRequest struct {
	Code string `json:"code"`
}

// RoomTokenResponse carries the signed invite token.
type RoomTokenResponse struct {
	Token string `json:"token"`
}

// QuickMatchResponse is the payload returned when requesting any open room.
type QuickMatchResponse struct {
	Code    string `json:"code"`
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers the room RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, deps *rpcDeps) error {
	if err := initializer.RegisterRpc(RpcCreateRoom, deps.rpcCreateRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcJoinRoom, deps.rpcJoinRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcQuickMatch, deps.rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcRoomToken, deps.rpcRoomToken)
}

func (d *rpcDeps) rpcCreateRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUserID
	}

	var request CreateRoomRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			return "", err
		}
	}
	if request.Private && d.tokens == nil {
		return "", errors.New("private rooms are not enabled")
	}

	code := d.codes.Reserve(config.GetGameConfig().RoomCodeLength)
	matchID, err := nk.MatchCreate(ctx, MatchNameFlushed, map[string]interface{}{
		"code":    code,
		"private": request.Private,
	})
	if err != nil {
		d.codes.Release(code)
		logger.Error("rpcCreateRoom: MatchCreate failed: %v", err)
		return "", err
	}
	d.codes.Bind(code, matchID)

	resp := CreateRoomResponse{Code: code, MatchID: matchID}
	if request.Private {
		token, err := d.tokens.IssueToken(userID, code)
		if err != nil {
			logger.Error("rpcCreateRoom: Token issue failed: %v", err)
			return "", err
		}
		resp.Token = token
	}

	logger.Info("rpcCreateRoom [User:%s]: Created room %s (%s)", userID, code, matchID)
	b, _ := json.Marshal(resp)
	return string(b), nil
}

func (d *rpcDeps) rpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var request JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return "", err
	}

	matchID, ok := d.codes.Lookup(request.Code)
	if !ok {
		return "", errUnknownRoomCode
	}

	// The match may have terminated since the code was bound; prune on
	// discovery so released codes become reusable.
	if match, err := nk.MatchGet(ctx, matchID); err != nil || match == nil {
		d.codes.Release(request.Code)
		return "", errUnknownRoomCode
	}

	b, _ := json.Marshal(JoinRoomResponse{MatchID: matchID})
	return string(b), nil
}

func (d *rpcDeps) rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUserID
	}

	// Find any public room that is still open for seats.
	query := "+label.open:T +label.game:flushed +label.phase:lobby +label.private:F"
	limit := 10
	authoritative := true
	minSize := 1
	maxSize := domain.MaxSeats - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch: MatchList failed: %v", err)
		return "", err
	}
	if len(matches) > 0 {
		var label Label
		_ = json.Unmarshal([]byte(matches[0].GetLabel().GetValue()), &label)
		b, _ := json.Marshal(QuickMatchResponse{Code: label.Code, MatchID: matches[0].MatchId, IsNew: false})
		return string(b), nil
	}

	code := d.codes.Reserve(config.GetGameConfig().RoomCodeLength)
	matchID, err := nk.MatchCreate(ctx, MatchNameFlushed, map[string]interface{}{"code": code, "private": false})
	if err != nil {
		d.codes.Release(code)
		logger.Error("rpcQuickMatch: MatchCreate failed: %v", err)
		return "", err
	}
	d.codes.Bind(code, matchID)

	b, _ := json.Marshal(QuickMatchResponse{Code: code, MatchID: matchID, IsNew: true})
	return string(b), nil
}

func (d *rpcDeps) rpcRoomToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUserID
	}
	if d.tokens == nil {
		return "", errors.New("private rooms are not enabled")
	}

	var request RoomTokenRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return "", err
	}
	if _, ok := d.codes.Lookup(request.Code); !ok {
		return "", errUnknownRoomCode
	}

	token, err := d.tokens.IssueToken(userID, request.Code)
	if err != nil {
		return "", err
	}
	b, _ := json.Marshal(RoomTokenResponse{Token: token})
	return string(b), nil
}
