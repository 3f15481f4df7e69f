package routes

import (
	"github.com/community-board/api-go/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes mounts the token endpoints. They authenticate through the
// request body or the refresh cookie, never through a bearer token.
func SetupAuthRoutes(api *gin.RouterGroup, authController *controllers.AuthController) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/google", authController.GoogleLogin)
	}
}
