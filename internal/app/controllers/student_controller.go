package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/services"
	"github.com/noriyal/madrasa-portal/internal/middleware"
)

// StudentController handles student lookups and the admin lifecycle
// operations.
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController.
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// List returns every student record, newest roll first.
func (c *StudentController) List(ctx *gin.Context) {
	students := c.studentService.List(ctx)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// Track is the public application-status lookup by roll.
func (c *StudentController) Track(ctx *gin.Context) {
	roll, err := strconv.Atoi(ctx.Param("roll"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roll must be a number").WithField("roll")))
		return
	}

	resp, err := c.studentService.Track(ctx, roll)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// FindByReg is the public ID-card lookup by registration number.
// First match wins when registration numbers collide.
func (c *StudentController) FindByReg(ctx *gin.Context) {
	student, err := c.studentService.FindByReg(ctx, ctx.Param("reg"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, ""))
}

// Upsert applies a manual create-or-update entry keyed by roll.
func (c *StudentController) Upsert(ctx *gin.Context) {
	var req dto.ManualEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, created, err := c.studentService.Upsert(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	message := "Student updated"
	if created {
		status = http.StatusCreated
		message = "Student created"
	}
	ctx.JSON(status, dto.NewAPIResponse(student, message))
}

// Verify approves a pending admission.
func (c *StudentController) Verify(ctx *gin.Context) {
	student, err := c.studentService.Verify(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student verified"))
}

// Delete permanently removes a student record.
func (c *StudentController) Delete(ctx *gin.Context) {
	if err := c.studentService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student deleted"))
}
