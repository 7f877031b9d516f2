package player

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 24 * time.Hour

func newMockService(t *testing.T) (IPlayerService, redismock.ClientMock, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdc, rdMock := redismock.NewClientMock()
	return NewPlayerService(rdc, db, testTTL), rdMock, dbMock
}

// anyArgs accepts whatever arguments the command was called with; used
// where the service generates random ids.
func anyArgs(expected, actual []interface{}) error { return nil }

func TestCreateSessionGeneratesIdentity(t *testing.T) {
	svc, rdMock, dbMock := newMockService(t)

	dbMock.ExpectExec("INSERT INTO players").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Ann", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rdMock.CustomMatch(anyArgs).ExpectHSet("sess:", "any").SetVal(6)
	rdMock.CustomMatch(anyArgs).ExpectExpire("sess:", testTTL).SetVal(true)
	rdMock.CustomMatch(anyArgs).ExpectSAdd(redisActiveSessions, "any").SetVal(1)

	dto, err := svc.CreateSession(context.Background(), "Ann")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), dto.SessionID)
	_, err = uuid.Parse(dto.PlayerID)
	assert.NoError(t, err)
	assert.Equal(t, "Ann", dto.DisplayName)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateSessionWithoutNameGetsGuestName(t *testing.T) {
	svc, rdMock, dbMock := newMockService(t)

	dbMock.ExpectExec("INSERT INTO players").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rdMock.CustomMatch(anyArgs).ExpectHSet("sess:", "any").SetVal(6)
	rdMock.CustomMatch(anyArgs).ExpectExpire("sess:", testTTL).SetVal(true)
	rdMock.CustomMatch(anyArgs).ExpectSAdd(redisActiveSessions, "any").SetVal(1)

	dto, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z]+\d{1,2}$`), dto.DisplayName)
}

func TestGetPlayerServesFromRedisFastPath(t *testing.T) {
	svc, rdMock, _ := newMockService(t)

	rdMock.ExpectHGetAll("sess:abc").SetVal(map[string]string{
		"pid":  "p1",
		"name": "Ann",
		"gp":   "3",
		"gw":   "1",
		"tpt":  "420",
		"la":   "1700000000",
	})
	rdMock.ExpectExpire("sess:abc", testTTL).SetVal(true)

	dto, err := svc.GetPlayer(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "p1", dto.PlayerID)
	assert.Equal(t, "Ann", dto.DisplayName)
	assert.Equal(t, 3, dto.GamesPlayed)
	assert.Equal(t, 1, dto.GamesWon)
	assert.Equal(t, 420, dto.TotalPlayTime)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), dto.LastActive)
	assert.NoError(t, rdMock.ExpectationsWereMet())
}

func TestGetPlayerFallsBackToPostgres(t *testing.T) {
	svc, rdMock, dbMock := newMockService(t)
	lastActive := time.Unix(1700000000, 0).UTC()

	rdMock.ExpectHGetAll("sess:abc").SetVal(map[string]string{})
	dbMock.ExpectQuery("SELECT player_id, display_name").
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{
			"player_id", "display_name", "games_played", "games_won",
			"total_play_time", "last_active",
		}).AddRow("p1", "Ann", 2, 1, 300, lastActive))

	// Cache gets re-warmed with the row just read.
	rdMock.ExpectHSet("sess:abc",
		"pid", "p1",
		"name", "Ann",
		"gp", 2,
		"gw", 1,
		"tpt", 300,
		"la", lastActive.Unix(),
	).SetVal(6)
	rdMock.ExpectExpire("sess:abc", testTTL).SetVal(true)
	rdMock.ExpectSAdd(redisActiveSessions, "sess:abc").SetVal(1)

	dto, err := svc.GetPlayer(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "p1", dto.PlayerID)
	assert.Equal(t, 2, dto.GamesPlayed)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, rdMock.ExpectationsWereMet())
}

func TestGetPlayerNotFound(t *testing.T) {
	svc, rdMock, dbMock := newMockService(t)

	rdMock.ExpectHGetAll("sess:nope").SetVal(map[string]string{})
	dbMock.ExpectQuery("SELECT player_id, display_name").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}))

	_, err := svc.GetPlayer(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestGenerateGuestNameShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z]+\d{1,2}$`)
	for range 50 {
		assert.Regexp(t, pattern, GenerateGuestName())
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for range 100 {
		id := newSessionID()
		assert.Len(t, id, 64)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
