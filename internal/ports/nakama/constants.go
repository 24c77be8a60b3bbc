package nakama

const (
	// MatchNameFlushed is the authoritative match handler name registered
	// with Nakama. One match is one room.
	MatchNameFlushed = "flushed_match"

	// RpcCreateRoom creates a room and returns its join code.
	RpcCreateRoom = "create_room"
	// RpcJoinRoom resolves a join code to a match id.
	RpcJoinRoom = "join_room"
	// RpcQuickMatch finds an open public room or creates one.
	RpcQuickMatch = "quick_match"
	// RpcRoomToken issues an invite token for a private room.
	RpcRoomToken = "room_token"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlay      int64 = 2

	// Server -> Client events
	OpUpdate  int64 = 101
	OpFlush   int64 = 102
	OpReverse int64 = 103
	OpWinner  int64 = 104
	OpError   int64 = 105
)
