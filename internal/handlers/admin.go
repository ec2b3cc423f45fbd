// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := h.db.Model(&models.AuditLog{})

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			query = query.Where("user_id = ?", userID)
		}
	}
	if resourceType := c.Query("resource_type"); resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	var logs []models.AuditLog
	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&logs).Error; err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	var stats struct {
		TotalUsers      int64 `json:"total_users"`
		TotalRequests   int64 `json:"total_requests"`
		PendingRequests int64 `json:"pending_requests"`
		TotalOffers     int64 `json:"total_offers"`
		TotalParts      int64 `json:"total_parts"`
	}

	h.db.Model(&models.User{}).Count(&stats.TotalUsers)
	h.db.Model(&models.PartRequest{}).Count(&stats.TotalRequests)
	h.db.Model(&models.PartRequest{}).
		Where("status = ?", models.RequestStatusPending).Count(&stats.PendingRequests)
	h.db.Model(&models.Offer{}).Count(&stats.TotalOffers)
	h.db.Model(&models.SparePart{}).Count(&stats.TotalParts)

	utils.SuccessResponse(c, stats)
}
