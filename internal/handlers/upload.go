// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/purzasetu/sparehub-backend/internal/i18n"
	"github.com/purzasetu/sparehub-backend/internal/services"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// POST /uploads/photo
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		utils.BadRequestResponse(c, "Photo file is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadPhoto(file, header)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url":     result.URL,
		"key":     result.Key,
		"size":    result.Size,
		"message": i18n.T(lang, i18n.KeyFileUploaded),
	})
}
