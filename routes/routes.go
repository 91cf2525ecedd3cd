package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/controllers"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	// Initialize controllers
	userController := controllers.NewUserController(db, cfg, log)
	postController := controllers.NewPostController(db, log)
	uploadController := controllers.NewUploadController(&cfg.Storage, log)

	SetupUserRoutes(r, userController, db, cfg)
	SetupPostRoutes(r, postController, db, cfg)
	SetupUploadRoutes(r, uploadController, db, cfg)
}
