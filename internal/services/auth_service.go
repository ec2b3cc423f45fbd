// internal/services/auth_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/config"
	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone,omitempty" validate:"omitempty,max=20"`
	Password string          `json:"password" validate:"required,min=8"`
	UserType models.UserType `json:"user_type" validate:"required,oneof=customer shopkeeper"`
	ShopName string          `json:"shop_name,omitempty" validate:"omitempty,max=150"`
	Location LocationInput   `json:"location" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "invalid registration fields", Details: utils.GetValidationErrors(err)}
	}

	if req.UserType == models.UserTypeShopkeeper && req.ShopName == "" {
		return nil, &ValidationError{Message: "shop_name is required for shopkeepers"}
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		UserType: req.UserType,
		ShopName: req.ShopName,
		Status:   models.UserStatusActive,
		Location: models.Location{
			State:    req.Location.State,
			District: req.Location.District,
			Area:     req.Location.Area,
		},
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, &StoreError{Op: "hash password", Err: err}
	}

	// The unique index on email is the authoritative duplicate check.
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Message: "user with this email already exists"}
		}
		return nil, &StoreError{Op: "create user", Err: err}
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "invalid login fields", Details: utils.GetValidationErrors(err)}
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ForbiddenError{Message: "invalid email or password"}
		}
		return nil, &StoreError{Op: "load user", Err: err}
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, &ForbiddenError{Message: "invalid email or password"}
	}

	if user.Status != models.UserStatusActive {
		return nil, &ForbiddenError{Message: "account is suspended"}
	}

	return s.buildAuthResponse(&user)
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", ID: userID}
		}
		return nil, &StoreError{Op: "load user", Err: err}
	}
	return &user, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Name, string(user.UserType), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, &StoreError{Op: "generate access token", Err: err}
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
