package mediahandler

import (
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Image types the puzzle board can slice.
var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type UploadData struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
} // @name UploadData

type SuccessResponse struct {
	Success bool       `json:"success"`
	Data    UploadData `json:"data"`
} // @name UploadResponse

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
} // @name ErrorResponse

type Handler struct {
	dir      string
	maxBytes int64
}

func New(dir string, maxBytes int64) *Handler {
	return &Handler{dir: dir, maxBytes: maxBytes}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/media/upload", h.upload)
}

// @Summary		Upload a puzzle image
// @Description	Accepts a JPEG/PNG/WebP image up to 10 MB; the content type is sniffed, not trusted.
// @Tags			Media
// @Accept			multipart/form-data
// @Param			image	formData	file	true	"Image file"
// @Success		200		{object}	SuccessResponse
// @Failure		400		{object}	ErrorResponse
// @Router			/api/media/upload [post]
func (h *Handler) upload(ginCtx *gin.Context) {
	file, err := ginCtx.FormFile("image")
	if err != nil {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: "No image file provided"})
		return
	}
	if file.Size > h.maxBytes {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Image exceeds the upload size limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	mtype, err := mimetype.DetectReader(src)
	src.Close()
	if err != nil {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable image file"})
		return
	}
	if _, ok := allowedTypes[mtype.String()]; !ok {
		ginCtx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid file type. Only JPEG, PNG and WebP are allowed.",
		})
		return
	}

	publicID := uuid.NewString()
	name := publicID + mtype.Extension()
	if err := ginCtx.SaveUploadedFile(file, filepath.Join(h.dir, name)); err != nil {
		zap.L().Error("media.save", zap.String("file", name), zap.Error(err))
		ginCtx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not store image"})
		return
	}

	ginCtx.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data: UploadData{
			URL:      "/media/" + name,
			PublicID: publicID,
		},
	})
}
