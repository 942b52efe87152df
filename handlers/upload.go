package handlers

import (
	"net/http"

	"mendwell/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// allowedUploadFolders keeps user uploads out of arbitrary storage paths.
var allowedUploadFolders = map[string]bool{
	"avatars": true,
	"chat":    true,
	"blog":    true,
}

// UploadHandler serves general media uploads: avatars, chat images, blog
// cover images. Verification documents go through the therapist handler
// instead because they need the signed-URL flow.
type UploadHandler struct {
	Storage storage.StorageService
}

// NewUploadHandler wires an upload handler.
func NewUploadHandler(store storage.StorageService) *UploadHandler {
	return &UploadHandler{Storage: store}
}

// UploadFileHandler stores a multipart file and returns its public id and
// delivery URL.
func (h *UploadHandler) UploadFileHandler(c *gin.Context) {
	logger := getLogger(c)

	folder := c.DefaultPostForm("folder", "avatars")
	if !allowedUploadFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown upload folder"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read the uploaded file"})
		return
	}
	defer file.Close()

	publicID, url, err := h.Storage.Upload(c.Request.Context(), file, folder, fileHeader.Filename)
	if err != nil {
		logger.Error("upload failed", zap.String("folder", folder), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"publicId": publicID, "url": url})
}

// DeleteFileHandler removes an uploaded asset.
func (h *UploadHandler) DeleteFileHandler(c *gin.Context) {
	var req struct {
		PublicID string `json:"publicId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Storage.Delete(c.Request.Context(), req.PublicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
