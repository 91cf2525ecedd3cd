package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/thread-nest/api-go/models"
	"github.com/thread-nest/api-go/utils"
	"gorm.io/gorm"
)

// maxPostLength caps post text, measured in characters rather than bytes.
const maxPostLength = 500

type PostController struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewPostController(db *gorm.DB, log *logrus.Logger) *PostController {
	return &PostController{DB: db, Log: log}
}

type CreatePostRequest struct {
	PostedBy uint   `json:"postedBy"`
	Text     string `json:"text"`
	Img      string `json:"img"`
}

func (pc *PostController) CreatePost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.PostedBy == 0 || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient data to create a post"})
		return
	}

	var author models.User
	if err := pc.DB.First(&author, req.PostedBy).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if author.ID != currentUser.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized to create a post"})
		return
	}

	if utf8.RuneCountInString(req.Text) > maxPostLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Text must be less than %d characters", maxPostLength)})
		return
	}

	post := models.Post{
		UserID:   author.ID,
		Text:     req.Text,
		Img:      req.Img,
		Hashtags: extractHashtags(req.Text),
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		pc.Log.WithError(err).Error("post create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "newPost": post})
}

// repliesInAppendOrder pins reply ordering to ascending id; without it the
// store is free to return replies in heap order.
func repliesInAppendOrder(db *gorm.DB) *gorm.DB {
	return db.Order("replies.id")
}

func (pc *PostController) GetPost(c *gin.Context) {
	var post models.Post
	if err := pc.DB.Preload("Likes").Preload("Replies", repliesInAppendOrder).First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post found", "post": post})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if post.UserID != currentUser.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized to delete post"})
		return
	}

	tx := pc.DB.Begin()

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		pc.Log.WithError(err).Error("post delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Reply{}).Error; err != nil {
		tx.Rollback()
		pc.Log.WithError(err).Error("post delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		pc.Log.WithError(err).Error("post delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		pc.Log.WithError(err).Error("post delete commit failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikeUnlikePost toggles the session user's membership in the post's likes.
// Each call flips the state.
func (pc *PostController) LikeUnlikePost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var existingLike models.Like
	result := pc.DB.Where("post_id = ? AND user_id = ?", post.ID, currentUser.ID).First(&existingLike)

	tx := pc.DB.Begin()

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		like := models.Like{
			PostID: post.ID,
			UserID: currentUser.ID,
		}

		if err := tx.Create(&like).Error; err != nil {
			tx.Rollback()
			pc.Log.WithError(err).Error("like failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to like post"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			pc.Log.WithError(err).Error("like commit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to like post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post liked successfully"})
	} else if result.Error != nil {
		tx.Rollback()
		pc.Log.WithError(result.Error).Error("like lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to like post"})
	} else {
		if err := tx.Delete(&existingLike).Error; err != nil {
			tx.Rollback()
			pc.Log.WithError(err).Error("unlike failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to unlike post"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			pc.Log.WithError(err).Error("unlike commit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to unlike post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully"})
	}
}

func (pc *PostController) ReplyToPost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var input struct {
		Text string `json:"text"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text field is required"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No such post found"})
		return
	}

	reply := models.Reply{
		PostID:         post.ID,
		UserID:         currentUser.ID,
		Text:           input.Text,
		Username:       currentUser.Username,
		UserProfilePic: currentUser.ProfilePic,
	}

	if err := pc.DB.Create(&reply).Error; err != nil {
		pc.Log.WithError(err).Error("reply failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add reply"})
		return
	}

	if err := pc.DB.Preload("Likes").Preload("Replies", repliesInAppendOrder).First(&post, post.ID).Error; err != nil {
		pc.Log.WithError(err).Error("reply reload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply added successfully", "post": post})
}

// GetFeedPosts returns posts authored by accounts the session user follows,
// newest first.
func (pc *PostController) GetFeedPosts(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	var user models.User
	if err := pc.DB.First(&user, currentUser.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No such user found"})
		return
	}

	feedPosts := []models.Post{}
	err := pc.DB.
		Joins("JOIN follows ON posts.user_id = follows.following_user_id").
		Where("follows.follower_user_id = ?", user.ID).
		Order("posts.created_at DESC, posts.id DESC").
		Preload("Likes").
		Preload("Replies", repliesInAppendOrder).
		Find(&feedPosts).Error
	if err != nil {
		pc.Log.WithError(err).Error("feed query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedPosts": feedPosts})
}

// extractHashtags pulls #tags out of post text.
func extractHashtags(content string) []string {
	words := strings.Fields(content)
	var hashtags []string
	for _, word := range words {
		if strings.HasPrefix(word, "#") {
			hashtag := strings.TrimPrefix(word, "#")
			if hashtag != "" {
				hashtags = append(hashtags, hashtag)
			}
		}
	}
	return hashtags
}
