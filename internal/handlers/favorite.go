// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/purzasetu/sparehub-backend/internal/i18n"
	"github.com/purzasetu/sparehub-backend/internal/services"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type toggleFavoriteRequest struct {
	PartID string `json:"partId" validate:"required"`
}

// POST /favorites/toggle
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "favorite"), err.Error())
		return
	}

	partID, err := uuid.Parse(req.PartID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	action, err := h.favoriteService.Toggle(actor.ID, partID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	msgKey := i18n.KeyFavoriteAdded
	if action == services.FavoriteRemoved {
		msgKey = i18n.KeyFavoriteRemoved
	}

	utils.SuccessResponse(c, gin.H{
		"action":  action,
		"message": i18n.T(lang, msgKey),
	})
}

// GET /favorites/:userId
func (h *FavoriteHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	if actor.ID != userID {
		utils.ForbiddenResponse(c, "Cannot view another user's favorites")
		return
	}

	favorites, err := h.favoriteService.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, favorites)
}

// DELETE /favorites/:userId/:partId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	if actor.ID != userID {
		utils.ForbiddenResponse(c, "Cannot modify another user's favorites")
		return
	}

	partID, err := uuid.Parse(c.Param("partId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	if err := h.favoriteService.Remove(userID, partID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyFavoriteRemoved)})
}
