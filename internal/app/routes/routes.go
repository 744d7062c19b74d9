package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniactivity/internal/app/controllers"
	"github.com/yigit/uniactivity/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	userController *controllers.UserController,
	classController *controllers.ClassController,
	inscriptionController *controllers.InscriptionController,
	assistanceController *controllers.AssistanceController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.OptionalJWT())

	v1.GET("/health", healthController.Health)

	users := v1.Group("/users")
	{
		users.POST("", userController.CreateUser)
		users.GET("/:id", userController.GetUserByID)
	}

	classes := v1.Group("/classes")
	{
		classes.GET("", classController.GetAllClasses)
		classes.POST("", classController.CreateClass)
		// static segments before /:id
		classes.GET("/type/:type", classController.GetClassesByType)
		classes.GET("/active", classController.GetActiveClasses)
		classes.GET("/schedule", classController.GetClassesBySchedule)
		classes.GET("/:id", classController.GetClassByID)
		classes.PUT("/:id", classController.UpdateClass)
		classes.DELETE("/:id", classController.DeleteClass)
	}

	inscriptions := v1.Group("/inscriptions")
	{
		inscriptions.GET("", inscriptionController.PendingAll)
		inscriptions.POST("", inscriptionController.Enroll)
		inscriptions.DELETE("", inscriptionController.Cancel)
		inscriptions.GET("/users/:userId", inscriptionController.PendingForUser)
	}

	assistance := v1.Group("/assistance")
	{
		assistance.POST("/confirm", assistanceController.Confirm)
		assistance.GET("/confirmed", assistanceController.ConfirmedAll)
		assistance.GET("/absences", assistanceController.Absences)
		assistance.GET("/users/:userId/count", assistanceController.CountInRange)
		assistance.GET("/users/:userId/classes/:classId/count", assistanceController.CountForClass)
		assistance.GET("/users/:userId/history", assistanceController.History)
	}
}
