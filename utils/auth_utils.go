package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/thread-nest/api-go/models"
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the session user resolved by the auth middleware, or nil
// on unprotected routes.
func GetUser(c *gin.Context) *models.User {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if u, ok := user.(*models.User); ok {
		return u
	}
	return nil
}
