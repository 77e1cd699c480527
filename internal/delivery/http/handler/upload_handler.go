package handler

import (
	"net/http"
	"strings"

	"github.com/dateit-app/dateit-backend/internal/usecase/media"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	mediaUseCase *media.MediaUseCase
}

func NewUploadHandler(mediaUseCase *media.MediaUseCase) *UploadHandler {
	return &UploadHandler{
		mediaUseCase: mediaUseCase,
	}
}

const maxMultipleFiles = 6

// Upload handles POST /upload
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file field required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to open uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.mediaUseCase.Upload(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UploadMultiple handles POST /upload-multiple
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart form required"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "files field required"})
		return
	}
	if len(files) > maxMultipleFiles {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "too many files"})
		return
	}

	results := make([]*media.UploadResult, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to open uploaded file"})
			return
		}

		result, err := h.mediaUseCase.Upload(
			c.Request.Context(),
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
			fileHeader.Size,
			file,
		)
		file.Close()
		if err != nil {
			respondError(c, err)
			return
		}
		results = append(results, result)
	}

	c.JSON(http.StatusCreated, gin.H{
		"files": results,
		"count": len(results),
	})
}

// Delete handles DELETE /upload/:objectKey
func (h *UploadHandler) Delete(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	// The key contains a slash, so the route captures it as wildcard.
	objectKey := strings.TrimPrefix(c.Param("objectKey"), "/")
	if objectKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "object key required"})
		return
	}

	if err := h.mediaUseCase.Delete(c.Request.Context(), objectKey); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
