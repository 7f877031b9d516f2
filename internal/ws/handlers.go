package ws

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var errMissingField = errors.New("missing required field")

const defaultPlayerName = "Player"

// registerHandlers wires every event family into the router. Audience per
// event:
//
//	room:join, room:leave, game:move,
//	chat:message, reaction:send  ➜ room minus sender
//	game:start, game:complete    ➜ whole room, sender included
func (s *Server) registerHandlers() {
	Register(s.router, EvtRoomJoin, s.handleRoomJoin)
	Register(s.router, EvtRoomLeave, s.handleRoomLeave)
	Register(s.router, EvtGameStart, s.handleGameStart)
	Register(s.router, EvtGameMove, s.handleGameMove)
	Register(s.router, EvtGameComplete, s.handleGameComplete)
	Register(s.router, EvtChatMessage, s.handleChatMessage)
	Register(s.router, EvtReactionSend, s.handleReaction)
}

// ──────────────────────────── Room lifecycle ─────────────────────────────────

func (s *Server) handleRoomJoin(c *ConnContext, req RoomJoinRequest) error {
	if req.RoomCode == "" || req.PlayerID == "" {
		return errMissingField
	}

	alreadyMember := s.hub.Join(req.RoomCode, c.ID)
	s.registry.TrackJoin(c.ID, req.RoomCode, req.PlayerID)

	s.broadcastExcept(req.RoomCode, c.ID, EvtPlayerJoined, PlayerJoinedBody{
		PlayerID: req.PlayerID,
		SocketID: string(c.ID),
	})

	if !alreadyMember {
		zap.L().Info("ws.room_joined",
			zap.String("room", req.RoomCode),
			zap.String("player", req.PlayerID))
	}
	return nil
}

func (s *Server) handleRoomLeave(c *ConnContext, req RoomLeaveRequest) error {
	if req.RoomCode == "" || req.PlayerID == "" {
		return errMissingField
	}

	s.hub.Leave(req.RoomCode, c.ID)
	s.registry.TrackLeave(c.ID, req.RoomCode)

	s.broadcastExcept(req.RoomCode, c.ID, EvtPlayerLeft, PlayerLeftBody{
		PlayerID: req.PlayerID,
		SocketID: string(c.ID),
	})

	zap.L().Info("ws.room_left",
		zap.String("room", req.RoomCode),
		zap.String("player", req.PlayerID))
	return nil
}

// ──────────────────────────── Game lifecycle ─────────────────────────────────
//
// The server holds no game-state authority; these relay client-declared
// state to the rest of the room.

func (s *Server) handleGameStart(c *ConnContext, req GameStartRequest) error {
	if req.RoomCode == "" {
		return errMissingField
	}

	// Host and players must see the state flip together.
	s.broadcast(req.RoomCode, EvtGameStarted, GameStartedBody{
		Timestamp: isoNow(),
	})
	return nil
}

func (s *Server) handleGameMove(c *ConnContext, req GameMoveRequest) error {
	if req.RoomCode == "" || req.PlayerID == "" || len(req.Move) == 0 {
		return errMissingField
	}

	// Sender already applied its own move locally.
	s.broadcastExcept(req.RoomCode, c.ID, EvtGameMoveRelay, GameMoveBody{
		PlayerID: req.PlayerID,
		Move:     req.Move,
	})
	return nil
}

func (s *Server) handleGameComplete(c *ConnContext, req GameCompleteRequest) error {
	if req.RoomCode == "" || req.PlayerID == "" {
		return errMissingField
	}

	// Everyone sees the winner announcement identically, sender included.
	s.broadcast(req.RoomCode, EvtGameCompleted, GameCompletedBody{
		WinnerID:       req.PlayerID,
		WinnerName:     req.DisplayName,
		CompletionTime: req.Time,
	})
	return nil
}

// ──────────────────────────── Chat / reactions ───────────────────────────────

func (s *Server) handleChatMessage(c *ConnContext, req ChatMessageRequest) error {
	if req.RoomCode == "" || req.PlayerID == "" || req.Message == "" {
		return errMissingField
	}

	now := time.Now()
	s.broadcastExcept(req.RoomCode, c.ID, EvtChatRelay, ChatMessageBody{
		// id and timestamp are stamped here; whatever the sender claims
		// is ignored.
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		PlayerID:   req.PlayerID,
		PlayerName: nameOrDefault(req.PlayerName),
		Message:    req.Message,
		Timestamp:  iso(now),
	})
	return nil
}

func (s *Server) handleReaction(c *ConnContext, req ReactionRequest) error {
	if req.RoomCode == "" || req.PlayerID == "" || req.Reaction == "" {
		return errMissingField
	}
	if _, ok := validReactions[req.Reaction]; !ok {
		return fmt.Errorf("unknown reaction %q", req.Reaction)
	}

	s.broadcastExcept(req.RoomCode, c.ID, EvtReactionReceived, ReactionReceivedBody{
		PlayerID:   req.PlayerID,
		PlayerName: nameOrDefault(req.PlayerName),
		Reaction:   req.Reaction,
		Timestamp:  isoNow(),
	})
	return nil
}

// ──────────────────────────── helpers ────────────────────────────────────────

func nameOrDefault(name string) string {
	if name == "" {
		return defaultPlayerName
	}
	return name
}

func iso(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func isoNow() string { return iso(time.Now()) }
