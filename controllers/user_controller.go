package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/models"
	"github.com/thread-nest/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB           *gorm.DB
	JWTSecret    string
	GoogleConfig *config.GoogleConfig
	Log          *logrus.Logger
}

func NewUserController(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *UserController {
	return &UserController{
		DB:           db,
		JWTSecret:    cfg.JWTSecret,
		GoogleConfig: config.NewGoogleConfig(cfg.Google),
		Log:          log,
	}
}

// publicProfile is the response shape for signup and login. The password
// hash never leaves the server.
func publicProfile(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"username":   u.Username,
		"bio":        u.Bio,
		"profilePic": u.ProfilePic,
	}
}

func (uc *UserController) Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := uc.DB.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.Log.WithError(err).Error("signup lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.Log.WithError(err).Error("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Username:   input.Username,
		Password:   string(hashedPassword),
		Bio:        "",
		ProfilePic: "",
	}

	// Unique constraints on email and username back up the lookup above
	// when two signups race.
	if err := uc.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		uc.Log.WithError(err).Error("signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if _, err := utils.GenerateTokenAndSetCookie(c, user.ID, uc.JWTSecret); err != nil {
		uc.Log.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, publicProfile(&user))
}

func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier"`
		Email      string `json:"email"`
		Username   string `json:"username"`
		Password   string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identifier := input.Identifier
	if identifier == "" {
		identifier = input.Email
	}
	if identifier == "" {
		identifier = input.Username
	}

	// Unknown account and wrong password produce the same response, so a
	// failed login never reveals whether the identifier exists.
	var user models.User
	err := uc.DB.Where("email = ? OR username = ?", identifier, identifier).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.Log.WithError(err).Error("login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
		return
	}

	if _, err := utils.GenerateTokenAndSetCookie(c, user.ID, uc.JWTSecret); err != nil {
		uc.Log.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, publicProfile(&user))
}

func (uc *UserController) Logout(c *gin.Context) {
	utils.ClearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully!"})
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := uc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No such user found"})
		return
	}

	following := []uint{}
	followers := []uint{}
	if err := uc.DB.Model(&models.Follow{}).Where("follower_user_id = ?", user.ID).
		Order("created_at").Pluck("following_user_id", &following).Error; err != nil {
		uc.Log.WithError(err).Error("profile relationship lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if err := uc.DB.Model(&models.Follow{}).Where("following_user_id = ?", user.ID).
		Order("created_at").Pluck("follower_user_id", &followers).Error; err != nil {
		uc.Log.WithError(err).Error("profile relationship lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"username":   user.Username,
		"bio":        user.Bio,
		"profilePic": user.ProfilePic,
		"created_at": user.CreatedAt,
		"following":  following,
		"followers":  followers,
	})
}

// FollowUnfollowUser toggles the follow relationship between the session
// user and the target. Each call flips membership; calling it twice returns
// the relationship to its starting state.
func (uc *UserController) FollowUnfollowUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User to follow not found"})
		return
	}

	if uint(targetID) == currentUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow/unfollow yourself!"})
		return
	}

	var targetUser models.User
	if err := uc.DB.First(&targetUser, targetID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User to follow not found"})
		return
	}

	var existingFollow models.Follow
	result := uc.DB.Where("follower_user_id = ? AND following_user_id = ?", currentUser.ID, targetUser.ID).First(&existingFollow)

	tx := uc.DB.Begin()

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		follow := models.Follow{
			FollowerUserID:  currentUser.ID,
			FollowingUserID: targetUser.ID,
		}

		if err := tx.Create(&follow).Error; err != nil {
			tx.Rollback()
			uc.Log.WithError(err).Error("follow failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			uc.Log.WithError(err).Error("follow commit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
	} else if result.Error != nil {
		tx.Rollback()
		uc.Log.WithError(result.Error).Error("follow lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
	} else {
		if err := tx.Delete(&existingFollow).Error; err != nil {
			tx.Rollback()
			uc.Log.WithError(err).Error("unfollow failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			uc.Log.WithError(err).Error("unfollow commit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
	}
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
		return
	}

	if c.Param("id") != strconv.FormatUint(uint64(currentUser.ID), 10) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot update other's profile"})
		return
	}

	var input struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Username   string `json:"username"`
		Password   string `json:"password"`
		ProfilePic string `json:"profilePic"`
		Bio        string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, currentUser.ID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.Log.WithError(err).Error("password hashing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		user.Password = string(hashedPassword)
	}

	// Empty means unchanged; an intentional clear is indistinguishable from
	// "not provided".
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.ProfilePic != "" {
		user.ProfilePic = input.ProfilePic
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		uc.Log.WithError(err).Error("profile update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// GoogleLogin verifies a Google credential and issues the same session
// cookie as password login, creating the account on first sight.
func (uc *UserController) GoogleLogin(c *gin.Context) {
	if uc.GoogleConfig == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google sign-in is not configured"})
		return
	}

	var input struct {
		IDToken     string `json:"id_token"`
		AccessToken string `json:"access_token"`
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userInfo *config.GoogleUserInfo
	var err error

	if input.Code != "" && input.RedirectURI != "" {
		token, exchangeErr := uc.GoogleConfig.ExchangeCode(c.Request.Context(), input.Code)
		if exchangeErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange code for token"})
			return
		}
		userInfo, err = uc.GoogleConfig.GetUserInfo(token.AccessToken)
	} else if input.IDToken != "" {
		userInfo, err = uc.GoogleConfig.VerifyIDToken(input.IDToken)
	} else if input.AccessToken != "" {
		userInfo, err = uc.GoogleConfig.GetUserInfo(input.AccessToken)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either code with redirect_uri, id_token, or access_token is required"})
		return
	}

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", userInfo.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			uc.Log.WithError(err).Error("google login lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		username := userInfo.Email
		counter := 1
		for {
			var existingUser models.User
			if uc.DB.Where("username = ?", username).First(&existingUser).Error != nil {
				break
			}
			username = userInfo.Email + strconv.Itoa(counter)
			counter++
		}

		user = models.User{
			Name:       userInfo.Name,
			Email:      userInfo.Email,
			Username:   username,
			Password:   "",
			ProfilePic: userInfo.Picture,
		}

		if err := uc.DB.Create(&user).Error; err != nil {
			uc.Log.WithError(err).Error("google signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	}

	if _, err := utils.GenerateTokenAndSetCookie(c, user.ID, uc.JWTSecret); err != nil {
		uc.Log.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, publicProfile(&user))
}
