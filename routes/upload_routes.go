package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/controllers"
	"github.com/thread-nest/api-go/middleware"
	"gorm.io/gorm"
)

func SetupUploadRoutes(r *gin.Engine, uploadController *controllers.UploadController, db *gorm.DB, cfg *config.Config) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.Auth(db, cfg.JWTSecret))
	{
		uploads.POST("/posts", uploadController.GetPostImageURL)
		uploads.POST("/avatar", uploadController.GetAvatarTempURL)
		uploads.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
	}
}
