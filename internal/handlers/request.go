// internal/handlers/request.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/purzasetu/sparehub-backend/internal/i18n"
	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/services"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return services.Actor{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return services.Actor{}, false
	}

	userType, _ := utils.GetUserTypeFromContext(c)
	return services.Actor{ID: userID, Type: models.UserType(userType)}, true
}

// POST /requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "request"), err.Error())
		return
	}

	request, err := h.requestService.CreateRequest(actor.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, request)
}

// GET /requests/customer/:customerId
func (h *RequestHandler) GetCustomerRequests(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid customer ID", nil)
		return
	}

	// Customers may only read their own list
	if actor.Type != models.UserTypeAdmin && actor.ID != customerID {
		utils.ForbiddenResponse(c, "Cannot view another customer's requests")
		return
	}

	requests, err := h.requestService.ListCustomerRequests(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, requests)
}

// GET /requests/market/:shopkeeperId
func (h *RequestHandler) GetMarketRequests(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	shopkeeperID, err := uuid.Parse(c.Param("shopkeeperId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid shopkeeper ID", nil)
		return
	}

	if actor.Type != models.UserTypeAdmin && actor.ID != shopkeeperID {
		utils.ForbiddenResponse(c, "Cannot view another shopkeeper's market feed")
		return
	}

	requests, err := h.requestService.ListMarketRequests(shopkeeperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, requests)
}

// GET /requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID", nil)
		return
	}

	request, err := h.requestService.GetRequest(requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, request)
}

// POST /requests/:id/offer
func (h *RequestHandler) SubmitOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID", nil)
		return
	}

	var req services.SubmitOfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "offer"), err.Error())
		return
	}

	request, err := h.requestService.SubmitOffer(requestID, actor.ID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, request)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PUT /requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID", nil)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), err.Error())
		return
	}

	request, err := h.requestService.UpdateStatus(requestID, models.RequestStatus(req.Status), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, request)
}

// DELETE /requests/:id
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID", nil)
		return
	}

	if err := h.requestService.DeleteRequest(requestID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyRequestDeleted)})
}

// GET /requests/cleanup/expired
func (h *RequestHandler) CleanupExpired(c *gin.Context) {
	expired, err := h.requestService.SweepExpired(h.requestService.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"expired_count": expired})
}
