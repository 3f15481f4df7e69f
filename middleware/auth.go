package middleware

import (
	"net/http"
	"strings"

	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
)

// AccessTokenParser resolves a bearer access token to a user id.
type AccessTokenParser interface {
	ParseAccess(raw string) (uint, error)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"errorCode": "UNAUTHORIZED",
		"message":   message,
	})
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
// ok is false when the header is present but malformed.
func bearer(c *gin.Context) (token string, present, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", true, false
	}
	return parts[1], true, true
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearer(c)
		if !present {
			unauthorized(c, "Authorization header is required")
			return
		}
		if !ok {
			unauthorized(c, "Invalid token format")
			return
		}

		userID, err := tokens.ParseAccess(token)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		utils.SetUser(c, &utils.UserClaims{UserID: userID})
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is sent and lets anonymous
// requests through. A token that is sent but invalid is still rejected.
func OptionalAuth(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearer(c)
		if !present {
			c.Next()
			return
		}
		if !ok {
			unauthorized(c, "Invalid token format")
			return
		}

		userID, err := tokens.ParseAccess(token)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		utils.SetUser(c, &utils.UserClaims{UserID: userID})
		c.Next()
	}
}
