package roomhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashwanthanumula/puzzlechat/internal/services/room"
)

type Handler struct {
	svc room.IRoomService
}

func New(svc room.IRoomService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/rooms", h.create)
	r.GET("/api/rooms/:code", h.get)
	r.POST("/api/rooms/:code/join", h.join)
}

// @Summary		Create a room
// @Description	Creates a room under a freshly generated 6-character code; the host becomes the first player.
// @Tags			Rooms
// @Param			body	body		CreateRoomBody	true	"Room payload"
// @Success		201		{object}	SuccessResponse
// @Failure		400		{object}	ErrorResponse
// @Router			/api/rooms [post]
func (h *Handler) create(ginCtx *gin.Context) {
	var body CreateRoomBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.CreateRoom(ginCtx.Request.Context(), room.CreateRoomInput{
		HostID:      body.HostID,
		Name:        body.Name,
		ImageURL:    body.ImageURL,
		Description: body.Description,
		Difficulty:  body.Difficulty,
		MaxPlayers:  body.MaxPlayers,
	})
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: dto})
}

// @Summary		Get room details
// @Description	Returns the room document for a 6-character code.
// @Tags			Rooms
// @Param			code	path		string	true	"Room code"	default(ABC123)
// @Success		200		{object}	SuccessResponse
// @Failure		404		{object}	ErrorResponse
// @Router			/api/rooms/{code} [get]
func (h *Handler) get(ginCtx *gin.Context) {
	code := ginCtx.Param("code")
	if err := room.ValidateCode(code); err != nil {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.GetRoom(ginCtx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			ginCtx.JSON(http.StatusNotFound, ErrorResponse{Error: "Room not found"})
			return
		}
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, SuccessResponse{Success: true, Data: dto})
}

// @Summary		Join a room
// @Description	Adds a player to a waiting room that still has a free seat.
// @Tags			Rooms
// @Param			code	path		string			true	"Room code"	default(ABC123)
// @Param			body	body		JoinRoomBody	true	"Join payload"
// @Success		200		{object}	SuccessResponse
// @Failure		400		{object}	ErrorResponse
// @Failure		404		{object}	ErrorResponse
// @Router			/api/rooms/{code}/join [post]
func (h *Handler) join(ginCtx *gin.Context) {
	code := ginCtx.Param("code")
	if err := room.ValidateCode(code); err != nil {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var body JoinRoomBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.JoinRoom(ginCtx.Request.Context(), code, body.PlayerID)
	switch {
	case err == nil:
		ginCtx.JSON(http.StatusOK, SuccessResponse{Success: true, Data: dto})
	case errors.Is(err, room.ErrRoomNotFound):
		ginCtx.JSON(http.StatusNotFound, ErrorResponse{Error: "Room not found"})
	case errors.Is(err, room.ErrGameInProgress):
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Game already in progress"})
	case errors.Is(err, room.ErrRoomFull):
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Room is full"})
	default:
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
