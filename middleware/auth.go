package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thread-nest/api-go/models"
	"github.com/thread-nest/api-go/utils"
	"gorm.io/gorm"
)

// Auth gates protected routes. It verifies the session cookie, resolves the
// user row it points at, and binds the user to the request context. A token
// whose user no longer exists is treated the same as an invalid token.
func Auth(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(utils.SessionCookieName)
		if err != nil || tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve session user"})
			}
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), &user)

		c.Next()
	}
}
