package player

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type PlayerDTO struct {
	SessionID     string    `json:"sessionId"`
	PlayerID      string    `json:"playerId"`
	DisplayName   string    `json:"displayName"`
	GamesPlayed   int       `json:"gamesPlayed"`
	GamesWon      int       `json:"gamesWon"`
	TotalPlayTime int       `json:"totalPlayTime"`
	LastActive    time.Time `json:"lastActive"`
}

const (
	redisSessionKeyPrefix = "sess:"
	redisActiveSessions   = "sess:active"
)

var ErrPlayerNotFound = errors.New("player not found")

type IPlayerService interface {
	CreateSession(ctx context.Context, displayName string) (*PlayerDTO, error)
	GetPlayer(ctx context.Context, sessionID string) (*PlayerDTO, error)
}

type playerService struct {
	rdc        *redis.Client
	db         *sql.DB
	sessionTTL time.Duration
}

func NewPlayerService(rdc *redis.Client, db *sql.DB, sessionTTL time.Duration) IPlayerService {
	return &playerService{
		rdc:        rdc,
		db:         db,
		sessionTTL: sessionTTL,
	}
}

// CreateSession mints a fresh guest identity: opaque session id, generated
// display name when none was given, durable row plus a hot Redis copy.
func (svc *playerService) CreateSession(ctx context.Context, displayName string) (*PlayerDTO, error) {
	if displayName == "" {
		displayName = GenerateGuestName()
	}

	dto := &PlayerDTO{
		SessionID:   newSessionID(),
		PlayerID:    uuid.NewString(),
		DisplayName: displayName,
		LastActive:  time.Now().UTC(),
	}

	const insertQ = `
	  INSERT INTO players (player_id, session_id, display_name, last_active)
	      VALUES ($1, $2, $3, $4)`
	if _, err := svc.db.ExecContext(ctx, insertQ,
		dto.PlayerID, dto.SessionID, dto.DisplayName, dto.LastActive); err != nil {
		return nil, err
	}

	svc.cacheSession(ctx, dto)
	return dto, nil
}

// GetPlayer serves from the Redis session hash when hot, falling back to
// Postgres and re-warming the cache.
func (svc *playerService) GetPlayer(ctx context.Context, sessionID string) (*PlayerDTO, error) {
	key := redisSessionKeyPrefix + sessionID

	if snap, _ := svc.rdc.HGetAll(ctx, key).Result(); len(snap) != 0 {
		_ = svc.rdc.Expire(ctx, key, svc.sessionTTL).Err()
		return &PlayerDTO{
			SessionID:     sessionID,
			PlayerID:      snap["pid"],
			DisplayName:   snap["name"],
			GamesPlayed:   atoi(snap["gp"]),
			GamesWon:      atoi(snap["gw"]),
			TotalPlayTime: atoi(snap["tpt"]),
			LastActive:    ts(snap["la"]),
		}, nil
	}

	const q = `
	  SELECT player_id, display_name, games_played, games_won,
	         total_play_time, last_active
	    FROM players WHERE session_id = $1`

	dto := &PlayerDTO{SessionID: sessionID}
	err := svc.db.QueryRowContext(ctx, q, sessionID).Scan(
		&dto.PlayerID, &dto.DisplayName, &dto.GamesPlayed, &dto.GamesWon,
		&dto.TotalPlayTime, &dto.LastActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}

	svc.cacheSession(ctx, dto)
	return dto, nil
}

// cacheSession is best-effort: a cold cache only costs the next lookup a
// round-trip to Postgres.
func (svc *playerService) cacheSession(ctx context.Context, dto *PlayerDTO) {
	key := redisSessionKeyPrefix + dto.SessionID

	err := svc.rdc.HSet(ctx, key,
		"pid", dto.PlayerID,
		"name", dto.DisplayName,
		"gp", dto.GamesPlayed,
		"gw", dto.GamesWon,
		"tpt", dto.TotalPlayTime,
		"la", dto.LastActive.Unix(),
	).Err()
	if err == nil {
		err = svc.rdc.Expire(ctx, key, svc.sessionTTL).Err()
	}
	if err == nil {
		err = svc.rdc.SAdd(ctx, redisActiveSessions, key).Err()
	}
	if err != nil {
		zap.L().Warn("player.cache_session", zap.Error(err))
	}
}

// helpers
func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func ts(s string) time.Time {
	i, _ := strconv.ParseInt(s, 10, 64)
	return time.Unix(i, 0).UTC()
}
