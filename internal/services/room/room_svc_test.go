package room

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) (IRoomService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRoomService(db), mock
}

func TestCreateRoomInsertsHostAsFirstPlayer(t *testing.T) {
	svc, mock := newMockService(t)
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO rooms").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectExec("INSERT INTO room_players").
		WillReturnResult(sqlmock.NewResult(0, 1))

	dto, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		HostID:      "host1",
		Name:        "Sunset puzzle",
		ImageURL:    "/media/sunset.jpg",
		Description: "A 24 piece sunset",
	})
	require.NoError(t, err)

	assert.Len(t, dto.Code, 6)
	assert.Equal(t, "host1", dto.HostID)
	assert.Equal(t, StatusWaiting, dto.Status)
	assert.Equal(t, defaultDifficulty, dto.Difficulty)
	assert.Equal(t, defaultMaxPlayers, dto.MaxPlayers)
	assert.Equal(t, []string{"host1"}, dto.Players)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoomRetriesOnCodeCollision(t *testing.T) {
	svc, mock := newMockService(t)

	// First code collides (no row returned), second succeeds.
	mock.ExpectQuery("INSERT INTO rooms").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
	mock.ExpectQuery("INSERT INTO rooms").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO room_players").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{HostID: "host1", Name: "r"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func roomRows(code string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"code", "host_id", "name", "image_url", "description",
		"difficulty", "max_players", "status", "created_at",
	}).AddRow(code, "host1", "Sunset puzzle", "/media/sunset.jpg", "desc",
		"medium", 8, StatusWaiting, time.Now())
}

func TestGetRoomUppercasesAndLoadsPlayers(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT code, host_id").
		WithArgs("ABC123").
		WillReturnRows(roomRows("ABC123"))
	mock.ExpectQuery("SELECT player_id FROM room_players").
		WithArgs("ABC123").
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).
			AddRow("host1").AddRow("p2"))

	dto, err := svc.GetRoom(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "ABC123", dto.Code)
	assert.Equal(t, []string{"host1", "p2"}, dto.Players)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT code, host_id").
		WithArgs("ZZZZZZ").
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	_, err := svc.GetRoom(context.Background(), "ZZZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinRoomAddsPlayer(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, max_players").
		WithArgs("ABC123").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_players"}).
			AddRow(StatusWaiting, 8))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ABC123", "p2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT count").
		WithArgs("ABC123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO room_players").
		WithArgs("ABC123", "p2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT code, host_id").
		WillReturnRows(roomRows("ABC123"))
	mock.ExpectQuery("SELECT player_id FROM room_players").
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).
			AddRow("host1").AddRow("p2"))

	dto, err := svc.JoinRoom(context.Background(), "abc123", "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"host1", "p2"}, dto.Players)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRoomAlreadyMemberIsIdempotent(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, max_players").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_players"}).
			AddRow(StatusWaiting, 8))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT code, host_id").
		WillReturnRows(roomRows("ABC123"))
	mock.ExpectQuery("SELECT player_id FROM room_players").
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).AddRow("host1"))

	_, err := svc.JoinRoom(context.Background(), "ABC123", "host1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRoomRejectsGameInProgress(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, max_players").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_players"}).
			AddRow(StatusPlaying, 8))
	mock.ExpectRollback()

	_, err := svc.JoinRoom(context.Background(), "ABC123", "p2")
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestJoinRoomRejectsFullRoom(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, max_players").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_players"}).
			AddRow(StatusWaiting, 2))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	_, err := svc.JoinRoom(context.Background(), "ABC123", "p3")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinRoomNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, max_players").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_players"}))
	mock.ExpectRollback()

	_, err := svc.JoinRoom(context.Background(), "ZZZZZZ", "p1")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
