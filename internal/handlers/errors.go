// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/purzasetu/sparehub-backend/internal/services"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

// respondServiceError maps the service layer's typed errors onto HTTP
// status codes and the JSON error envelope.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		inactiveErr   *services.InactiveRequestError
		duplicateErr  *services.DuplicateOfferError
		illegalErr    *services.IllegalTransitionError
		forbiddenErr  *services.ForbiddenError
		storeErr      *services.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message, validationErr.Details)
	case errors.As(err, &notFoundErr):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error(), nil)
	case errors.As(err, &inactiveErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "REQUEST_INACTIVE", inactiveErr.Error(), nil)
	case errors.As(err, &duplicateErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_OFFER", duplicateErr.Error(), nil)
	case errors.As(err, &illegalErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "ILLEGAL_TRANSITION", illegalErr.Error(), nil)
	case errors.As(err, &forbiddenErr):
		utils.ForbiddenResponse(c, forbiddenErr.Error())
	case errors.As(err, &storeErr):
		logrus.WithError(storeErr).Error("Persistence failure")
		utils.InternalErrorResponse(c, "")
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}
