package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
	"github.com/dailyjobboost/api/internal/app"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	service *app.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *app.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued admin bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/v1/auth/login
// Invalid credentials produce a 401 without distinguishing unknown email
// from wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// RegisterAuthRoutes registers authentication routes on the given group.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
}
