package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserClaims struct {
	UserID uint `json:"user_id"`
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

func SetUser(c *gin.Context, claims *UserClaims) {
	c.Set(string(UserContextKey), claims)
}

// ActorID returns the authenticated user id in the string form the services
// expect, or "" for anonymous requests.
func ActorID(c *gin.Context) string {
	user := GetUser(c)
	if user == nil {
		return ""
	}
	return strconv.FormatUint(uint64(user.UserID), 10)
}
