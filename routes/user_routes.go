package routes

import (
	"github.com/community-board/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(public, protected *gin.RouterGroup, userController *controllers.UserController, validationController *controllers.ValidationController) {
	users := public.Group("/users")
	{
		users.POST("", userController.SignUp)
		users.GET("/check-email", validationController.CheckEmail)
		users.GET("/check-nickname", validationController.CheckNickname)
	}

	me := protected.Group("/users/me")
	{
		me.GET("", userController.GetMe)
		me.PATCH("", userController.UpdateMe)
		me.DELETE("", userController.DeleteMe)
		me.PATCH("/password", userController.ChangePassword)
	}
}
