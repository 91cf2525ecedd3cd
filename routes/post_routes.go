package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/controllers"
	"github.com/thread-nest/api-go/middleware"
	"gorm.io/gorm"
)

func SetupPostRoutes(r *gin.Engine, postController *controllers.PostController, db *gorm.DB, cfg *config.Config) {
	// Reading a single post is public
	r.GET("/posts/:id", postController.GetPost)

	protected := r.Group("/")
	protected.Use(middleware.Auth(db, cfg.JWTSecret))
	{
		protected.POST("/posts", postController.CreatePost)
		protected.DELETE("/posts/:id", postController.DeletePost)
		protected.POST("/posts/:id/like", postController.LikeUnlikePost)
		protected.POST("/posts/:id/reply", postController.ReplyToPost)
		protected.GET("/feed", postController.GetFeedPosts)
	}
}
