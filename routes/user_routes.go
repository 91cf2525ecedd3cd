package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/controllers"
	"github.com/thread-nest/api-go/middleware"
	"gorm.io/gorm"
)

func SetupUserRoutes(r *gin.Engine, userController *controllers.UserController, db *gorm.DB, cfg *config.Config) {
	// Public routes
	r.POST("/signup", userController.Signup)
	r.POST("/login", userController.Login)
	r.POST("/logout", userController.Logout)
	r.POST("/auth/google", userController.GoogleLogin)
	r.GET("/profile/:username", userController.GetUserProfile)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.Auth(db, cfg.JWTSecret))
	{
		protected.POST("/follow/:id", userController.FollowUnfollowUser)
		protected.PUT("/update/:id", userController.UpdateUser)
	}
}
