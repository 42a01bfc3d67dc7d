package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/user"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// AuthHandler handles HTTP requests for registration, login and profile operations
type AuthHandler struct {
	service   user.Service
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service user.Service, jwtSecret string) *AuthHandler {
	return &AuthHandler{service: service, jwtSecret: jwtSecret}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new user account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.UserResponse "Account created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := bindRequest[dto.RegisterRequest](c)
	if !ok {
		return
	}

	created, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		statuscode := http.StatusInternalServerError
		if errors.Is(err, user.ErrEmailTaken) {
			statuscode = http.StatusConflict
		} else if errors.Is(err, user.ErrInvalidInput) {
			statuscode = http.StatusBadRequest
		}
		c.JSON(statuscode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": UserToResponse(created)})
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse "Logged in successfully"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindRequest[dto.LoginRequest](c)
	if !ok {
		return
	}

	u, token, err := h.service.Login(c.Request.Context(), user.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AuthResponse{
		Token: token,
		User:  *UserToResponse(u),
	}})
}

// Logout godoc
// @Summary Log out
// @Description Invalidate the bearer token used on this request
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logged out successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := middleware.GetToken(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	expiry := time.Now().Add(24 * time.Hour)
	if claims, err := auth.ValidateToken(token, h.jwtSecret); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	auth.GetTokenBlacklist().AddToBlacklist(token, expiry)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "Profile retrieved successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	u, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		statuscode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statuscode = http.StatusNotFound
		}
		c.JSON(statuscode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(u)})
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} dto.UserResponse "Profile updated successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req, ok := bindRequest[dto.UpdateProfileRequest](c)
	if !ok {
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, user.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		statuscode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statuscode = http.StatusNotFound
		} else if errors.Is(err, user.ErrInvalidInput) {
			statuscode = http.StatusBadRequest
		}
		c.JSON(statuscode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(u)})
}
