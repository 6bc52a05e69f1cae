// Package routes wires controllers onto the HTTP surface
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusflow/enroll/internal/app/controllers"
	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/middleware"
)

// SetupRouter registers every API route on the engine
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	catalogController *controllers.CatalogController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface: login, registration and catalog reads.
	api.POST("/login", authController.Login)
	api.POST("/students", studentController.Register)
	api.GET("/courses", catalogController.ListCourses)
	api.GET("/courses/:id", catalogController.GetCourse)
	api.GET("/subjects", catalogController.ListSubjects)
	api.GET("/subjects/:id", catalogController.GetSubject)

	identity := api.Group("")
	identity.Use(authMiddleware.Identity())
	{
		identity.POST("/logout", authController.Logout)
		identity.GET("/user", authController.CurrentUser)
		identity.PUT("/user/password", authController.ChangePassword)
		identity.PUT("/user/profile", authController.UpdateProfile)

		// Owner-or-admin check happens in the handler.
		identity.GET("/students/:id/enrollments", studentController.Enrollments)
	}

	admin := api.Group("")
	admin.Use(authMiddleware.Identity(), authMiddleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/students", studentController.List)
		admin.GET("/students/export", studentController.Export)
		admin.GET("/students/:id", studentController.Get)
		admin.PATCH("/students/:id", studentController.Update)
		admin.DELETE("/students/:id", studentController.Delete)
		admin.POST("/students/:id/approve", studentController.Approve)
		admin.POST("/students/:id/reject", studentController.Reject)
		admin.POST("/students/:id/enroll", studentController.AssignSubjects)

		admin.POST("/courses", catalogController.CreateCourse)
		admin.PATCH("/courses/:id", catalogController.UpdateCourse)
		admin.DELETE("/courses/:id", catalogController.DeleteCourse)
		admin.POST("/subjects", catalogController.CreateSubject)
		admin.PATCH("/subjects/:id", catalogController.UpdateSubject)
		admin.DELETE("/subjects/:id", catalogController.DeleteSubject)

		admin.GET("/admin/dashboard", adminController.Dashboard)
		admin.POST("/admin/notifications/email", adminController.SendEmail)
		admin.POST("/admin/notifications/sms", adminController.SendSMS)
		admin.GET("/admin/notifications", adminController.ListNotifications)
		admin.GET("/admin/login-attempts", adminController.ListLoginAttempts)
		admin.POST("/admin/maintenance/rehash-passwords", adminController.RehashPasswords)
	}
}
