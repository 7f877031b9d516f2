package ws

import "encoding/json"

// Envelope wraps every WS frame, inbound and outbound.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "chat:message"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// Inbound event names (client ➜ server).
const (
	EvtRoomJoin     = "room:join"
	EvtRoomLeave    = "room:leave"
	EvtGameStart    = "game:start"
	EvtGameMove     = "game:move"
	EvtGameComplete = "game:complete"
	EvtChatMessage  = "chat:message"
	EvtReactionSend = "reaction:send"
)

// Outbound event names (server ➜ client).
const (
	EvtConnected        = "connected"
	EvtPlayerJoined     = "player:joined"
	EvtPlayerLeft       = "player:left"
	EvtGameStarted      = "game:started"
	EvtGameMoveRelay    = "game:move"
	EvtGameCompleted    = "game:completed"
	EvtChatRelay        = "chat:message"
	EvtReactionReceived = "reaction:received"
)

// ──────────────────────────── Inbound DTOs ───────────────────────────────────

type RoomJoinRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type RoomLeaveRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type GameStartRequest struct {
	RoomCode string `json:"roomCode"`
}

type GameMoveRequest struct {
	RoomCode string          `json:"roomCode"`
	PlayerID string          `json:"playerId"`
	Move     json.RawMessage `json:"move"` // opaque, relayed as-is
}

type GameCompleteRequest struct {
	RoomCode    string  `json:"roomCode"`
	PlayerID    string  `json:"playerId"`
	DisplayName string  `json:"displayName"`
	Time        float64 `json:"time"`
}

type ChatMessageRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	Message    string `json:"message"`
	PlayerName string `json:"playerName,omitempty"`
}

type ReactionRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName,omitempty"`
	Reaction   string `json:"reaction"`
}

// ──────────────────────────── Outbound DTOs ──────────────────────────────────

type ConnectedBody struct {
	SocketID string `json:"socketId"`
}

type PlayerJoinedBody struct {
	PlayerID string `json:"playerId"`
	SocketID string `json:"socketId"`
}

type PlayerLeftBody struct {
	PlayerID string `json:"playerId"`
	SocketID string `json:"socketId"`
}

type GameStartedBody struct {
	Timestamp string `json:"timestamp"`
}

type GameMoveBody struct {
	PlayerID string          `json:"playerId"`
	Move     json.RawMessage `json:"move"`
}

type GameCompletedBody struct {
	WinnerID       string  `json:"winnerId"`
	WinnerName     string  `json:"winnerName"`
	CompletionTime float64 `json:"completionTime"`
}

type ChatMessageBody struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

type ReactionReceivedBody struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Reaction   string `json:"reaction"`
	Timestamp  string `json:"timestamp"`
}

// validReactions is the closed reaction vocabulary; anything else is dropped.
var validReactions = map[string]struct{}{
	"thumbs-up": {},
	"clap":      {},
	"laugh":     {},
	"think":     {},
	"celebrate": {},
	"heart":     {},
	"fire":      {},
	"shock":     {},
}

func marshalEnvelope(event string, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Body: raw})
}
