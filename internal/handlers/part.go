// internal/handlers/part.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/purzasetu/sparehub-backend/internal/i18n"
	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/services"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

type PartHandler struct {
	partService *services.PartService
}

func NewPartHandler(partService *services.PartService) *PartHandler {
	return &PartHandler{partService: partService}
}

// GET /parts
func (h *PartHandler) GetParts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.PartSearchParams{
		PaginationParams: params,
	}

	if shopkeeperIDStr := c.Query("shopkeeper_id"); shopkeeperIDStr != "" {
		if shopkeeperID, err := uuid.Parse(shopkeeperIDStr); err == nil {
			searchParams.ShopkeeperID = &shopkeeperID
		}
	}

	if condition := c.Query("condition"); condition != "" {
		partCondition := models.PartCondition(condition)
		searchParams.Condition = &partCondition
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := strconv.Atoi(priceMinStr); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}

	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := strconv.Atoi(priceMaxStr); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}

	if district := c.Query("district"); district != "" {
		searchParams.District = district
	}

	parts, total, err := h.partService.SearchParts(searchParams)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(parts, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /parts/:id
func (h *PartHandler) GetPart(c *gin.Context) {
	partID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	part, err := h.partService.GetPart(partID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, part)
}

// POST /parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if actor.Type != models.UserTypeShopkeeper {
		utils.ForbiddenResponse(c, "Only shopkeepers can list parts")
		return
	}

	var req services.CreatePartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "part"), err.Error())
		return
	}

	part, err := h.partService.CreatePart(actor.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, part)
}

// PUT /parts/:id
func (h *PartHandler) UpdatePart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	partID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	var req services.UpdatePartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "part"), err.Error())
		return
	}

	part, err := h.partService.UpdatePart(partID, actor.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, part)
}

// DELETE /parts/:id
func (h *PartHandler) DeletePart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	partID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid part ID", nil)
		return
	}

	if err := h.partService.DeletePart(partID, actor.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyPartDeleted)})
}

// GET /parts/categories
func (h *PartHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, utils.PartCategories)
}
