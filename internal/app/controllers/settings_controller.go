package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/services"
	"github.com/noriyal/madrasa-portal/internal/middleware"
)

// SettingsController handles portal settings, reference metadata and
// the backup/restore endpoints.
type SettingsController struct {
	settingsService services.SettingsService
}

// NewSettingsController creates a new SettingsController.
func NewSettingsController(settingsService services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// Get returns the current portal settings.
func (c *SettingsController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.settingsService.Get(ctx), ""))
}

// Update replaces the portal settings wholesale.
func (c *SettingsController) Update(ctx *gin.Context) {
	var settings models.PortalSettings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.settingsService.Update(ctx, settings); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(settings, "Settings saved"))
}

// Meta returns the reference lists the admission and marks forms
// render from.
func (c *SettingsController) Meta(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"subjects":    models.SubjectList,
		"classes":     models.ClassList,
		"bloodGroups": models.BloodGroups,
	}, ""))
}

// Backup streams all three collections as one downloadable document.
func (c *SettingsController) Backup(ctx *gin.Context) {
	doc := c.settingsService.Backup(ctx)
	filename := fmt.Sprintf("madrasa_portal_backup_%s.json", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.JSON(http.StatusOK, doc)
}

// Restore replaces the live collections with an uploaded backup.
func (c *SettingsController) Restore(ctx *gin.Context) {
	var doc dto.BackupDocument
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.settingsService.Restore(ctx, doc); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Backup restored"))
}
