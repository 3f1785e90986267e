package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"quadras/services/storage"

	"github.com/gin-gonic/gin"
)

// allowedFolders are the permitted upload targets.
var allowedFolders = map[string]bool{
	"arenas": true,
	"courts": true,
	"logos":  true,
}

// StorageHandler serves photo uploads for arenas and courts.
type StorageHandler struct {
	Storage storage.StorageService
}

// Upload handles POST /uploads/:folder with a multipart "file" field.
func (h *StorageHandler) Upload(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage is not configured"})
		return
	}
	folder := c.Param("folder")
	if !allowedFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder; allowed values are 'arenas', 'courts' and 'logos'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	url, publicID, err := h.Storage.UploadImage(c, tempFilePath, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "public_id": publicID})
}

// Delete handles DELETE /uploads/:folder/:id.
func (h *StorageHandler) Delete(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage is not configured"})
		return
	}
	folder := c.Param("folder")
	if !allowedFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder"})
		return
	}
	publicID := folder + "/" + c.Param("id")
	if err := h.Storage.DeleteImage(c, publicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
