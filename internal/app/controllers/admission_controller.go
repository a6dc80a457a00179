package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/services"
	"github.com/noriyal/madrasa-portal/internal/middleware"
)

// AdmissionController handles the public online admission flow.
type AdmissionController struct {
	admissionService services.AdmissionService
}

// NewAdmissionController creates a new AdmissionController.
func NewAdmissionController(admissionService services.AdmissionService) *AdmissionController {
	return &AdmissionController{admissionService: admissionService}
}

// Create accepts a completed admission form and returns the assigned
// roll for display and printing.
func (c *AdmissionController) Create(ctx *gin.Context) {
	var req dto.AdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.admissionService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Admission received"))
}
