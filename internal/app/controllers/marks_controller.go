package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/services"
	"github.com/noriyal/madrasa-portal/internal/middleware"
)

// MarksController handles marks entry and the public result lookup.
type MarksController struct {
	marksService services.MarksService
}

// NewMarksController creates a new MarksController.
func NewMarksController(marksService services.MarksService) *MarksController {
	return &MarksController{marksService: marksService}
}

func parseRoll(ctx *gin.Context) (int, bool) {
	roll, err := strconv.Atoi(ctx.Param("roll"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roll must be a number").WithField("roll")))
		return 0, false
	}
	return roll, true
}

// Load returns the editable marks sheet for a roll's current session.
func (c *MarksController) Load(ctx *gin.Context) {
	roll, ok := parseRoll(ctx)
	if !ok {
		return
	}

	resp, err := c.marksService.Load(ctx, roll)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Save overwrites the marks mapping for a roll's current session.
func (c *MarksController) Save(ctx *gin.Context) {
	roll, ok := parseRoll(ctx)
	if !ok {
		return
	}

	var req dto.SaveMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.marksService.Save(ctx, roll, req.Marks); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Marks saved"))
}

// Result is the public transcript lookup by roll.
func (c *MarksController) Result(ctx *gin.Context) {
	roll, ok := parseRoll(ctx)
	if !ok {
		return
	}

	resp, err := c.marksService.Result(ctx, roll)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
