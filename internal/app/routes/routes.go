package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/noriyal/madrasa-portal/internal/app/controllers"
	"github.com/noriyal/madrasa-portal/internal/middleware"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	admissionController *controllers.AdmissionController,
	studentController *controllers.StudentController,
	marksController *controllers.MarksController,
	settingsController *controllers.SettingsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/auth/login", authController.Login)
	v1.POST("/admissions", admissionController.Create)
	v1.GET("/students/roll/:roll", studentController.Track)
	v1.GET("/students/reg/:reg", studentController.FindByReg)
	v1.GET("/results/:roll", marksController.Result)
	v1.GET("/settings", settingsController.Get)
	v1.GET("/meta", settingsController.Meta)

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.AdminRequired())
	{
		admin.GET("/students", studentController.List)
		admin.POST("/students", studentController.Upsert)
		admin.PATCH("/students/:id/verify", studentController.Verify)
		admin.DELETE("/students/:id", studentController.Delete)

		admin.GET("/marks/:roll", marksController.Load)
		admin.PUT("/marks/:roll", marksController.Save)

		admin.PUT("/settings", settingsController.Update)
		admin.GET("/backup", settingsController.Backup)
		admin.POST("/restore", settingsController.Restore)
	}
}
