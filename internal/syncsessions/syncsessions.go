package syncsessions

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	activeSet  = "sess:active"
	keyPrefix  = "sess:"
	syncPeriod = time.Minute
)

// Every minute, mirror active sessions' last_active into Postgres and
// prune set entries whose Redis hashes have since expired.
func Run(ctx context.Context, rdc *redis.Client, db *sql.DB) {
	tk := time.NewTicker(syncPeriod)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				syncOnce(ctx, rdc, db)
			}
		}
	}()
}

func syncOnce(ctx context.Context, rdc *redis.Client, db *sql.DB) {
	keys, err := rdc.SMembers(ctx, activeSet).Result()
	if err != nil || len(keys) == 0 {
		return
	}

	// 1. fetch all session hashes in one pipelined round-trip
	pipe := rdc.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.HGetAll(ctx, k)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		zap.L().Error("syncsessions.pipeline", zap.Error(err))
		return
	}

	// 2. write last_active back, prune expired keys
	const updateQ = `
	  UPDATE players SET last_active = to_timestamp($1)
	   WHERE session_id = $2`

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		zap.L().Error("syncsessions.tx_begin", zap.Error(err))
		return
	}
	defer tx.Rollback()

	for i, cmd := range cmds {
		data, err := cmd.Result()
		sessionID := keys[i][len(keyPrefix):] // strip "sess:"
		if err != nil || len(data) == 0 {
			// hash expired between SMEMBERS and HGETALL
			_ = rdc.SRem(ctx, activeSet, keys[i]).Err()
			continue
		}
		la, _ := strconv.ParseInt(data["la"], 10, 64)
		if _, err := tx.ExecContext(ctx, updateQ, la, sessionID); err != nil {
			zap.L().Error("syncsessions.update",
				zap.String("session", sessionID), zap.Error(err))
		}
	}

	if err = tx.Commit(); err != nil {
		zap.L().Debug("syncsessions_error", zap.Error(err))
	}
}
