package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/services"
	"github.com/noriyal/madrasa-portal/internal/middleware"
)

// AuthController handles the admin login.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login exchanges the shared admin password for a session token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.Login(ctx, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Logged in"))
}
