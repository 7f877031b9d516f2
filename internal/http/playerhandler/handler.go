package playerhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashwanthanumula/puzzlechat/internal/services/player"
)

type Handler struct {
	svc player.IPlayerService
}

func New(svc player.IPlayerService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/players/session", h.createSession)
	r.GET("/api/players/:sessionId", h.get)
}

// @Summary		Create a player session
// @Description	Mints an opaque session id; players without a display name get a generated guest name.
// @Tags			Players
// @Param			body	body		CreateSessionBody	false	"Session payload"
// @Success		201		{object}	SuccessResponse
// @Failure		400		{object}	ErrorResponse
// @Router			/api/players/session [post]
func (h *Handler) createSession(ginCtx *gin.Context) {
	var body CreateSessionBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil && ginCtx.Request.ContentLength > 0 {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.CreateSession(ginCtx.Request.Context(), body.DisplayName)
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: dto})
}

// @Summary		Get player by session
// @Description	Looks the player up by the opaque session id issued at session creation.
// @Tags			Players
// @Param			sessionId	path		string	true	"Session id"
// @Success		200			{object}	SuccessResponse
// @Failure		404			{object}	ErrorResponse
// @Router			/api/players/{sessionId} [get]
func (h *Handler) get(ginCtx *gin.Context) {
	dto, err := h.svc.GetPlayer(ginCtx.Request.Context(), ginCtx.Param("sessionId"))
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			ginCtx.JSON(http.StatusNotFound, ErrorResponse{Error: "Player not found"})
			return
		}
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, SuccessResponse{Success: true, Data: dto})
}
