package roomhandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashwanthanumula/puzzlechat/internal/services/room"
)

type stubRoomService struct {
	createErr error
	getErr    error
	joinErr   error
	room      *room.RoomDTO
}

func (s *stubRoomService) CreateRoom(_ context.Context, in room.CreateRoomInput) (*room.RoomDTO, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.room, nil
}

func (s *stubRoomService) GetRoom(_ context.Context, code string) (*room.RoomDTO, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.room, nil
}

func (s *stubRoomService) JoinRoom(_ context.Context, code, playerID string) (*room.RoomDTO, error) {
	if s.joinErr != nil {
		return nil, s.joinErr
	}
	return s.room, nil
}

func newTestRouter(svc room.IRoomService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New(svc).Register(engine)
	return engine
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateRoomReturns201(t *testing.T) {
	engine := newTestRouter(&stubRoomService{
		room: &room.RoomDTO{Code: "ABC123", HostID: "host1", Status: room.StatusWaiting},
	})

	rec := do(engine, http.MethodPost, "/api/rooms",
		`{"name":"Sunset","description":"desc","difficulty":"easy","hostId":"host1","imageUrl":"/media/a.jpg"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"code":"ABC123"`)
}

func TestCreateRoomRejectsMissingFields(t *testing.T) {
	engine := newTestRouter(&stubRoomService{})

	rec := do(engine, http.MethodPost, "/api/rooms", `{"name":"only a name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRoomRejectsBadDifficulty(t *testing.T) {
	engine := newTestRouter(&stubRoomService{})

	rec := do(engine, http.MethodPost, "/api/rooms",
		`{"name":"n","description":"d","difficulty":"brutal","hostId":"h","imageUrl":"/x.jpg"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoomNotFound(t *testing.T) {
	engine := newTestRouter(&stubRoomService{getErr: room.ErrRoomNotFound})

	rec := do(engine, http.MethodGet, "/api/rooms/ZZZZZZ", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Room not found")
}

func TestGetRoomRejectsBadCode(t *testing.T) {
	engine := newTestRouter(&stubRoomService{})

	rec := do(engine, http.MethodGet, "/api/rooms/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinRoomMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{room.ErrRoomNotFound, http.StatusNotFound},
		{room.ErrGameInProgress, http.StatusBadRequest},
		{room.ErrRoomFull, http.StatusBadRequest},
	}

	for _, tc := range cases {
		engine := newTestRouter(&stubRoomService{joinErr: tc.err})
		rec := do(engine, http.MethodPost, "/api/rooms/ABC123/join", `{"playerId":"p1"}`)
		assert.Equal(t, tc.code, rec.Code, "for error %v", tc.err)
	}
}

func TestJoinRoomSucceeds(t *testing.T) {
	engine := newTestRouter(&stubRoomService{
		room: &room.RoomDTO{Code: "ABC123", Players: []string{"host1", "p1"}},
	})

	rec := do(engine, http.MethodPost, "/api/rooms/ABC123/join", `{"playerId":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"players":["host1","p1"]`)
}
