// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyNotFound          = "common.not_found"
	KeyValidationInvalid = "validation.invalid"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAdminAccessDenied      = "auth.admin_access_denied"

	// Part requests
	KeyRequestCreated  = "request.created"
	KeyRequestUpdated  = "request.updated"
	KeyRequestDeleted  = "request.deleted"
	KeyRequestNotFound = "request.not_found"
	KeyRequestExpired  = "request.expired"
	KeyRequestInactive = "request.inactive"

	// Offers
	KeyOfferSubmitted = "offer.submitted"
	KeyOfferDuplicate = "offer.duplicate"

	// Part listings
	KeyPartCreated  = "part.created"
	KeyPartUpdated  = "part.updated"
	KeyPartDeleted  = "part.deleted"
	KeyPartNotFound = "part.not_found"

	// Favorites
	KeyFavoriteAdded   = "favorite.added"
	KeyFavoriteRemoved = "favorite.removed"

	// Uploads
	KeyFileUploadFailed = "upload.failed"
	KeyFileUploaded     = "upload.success"
)
