package routes

import (
	"github.com/community-board/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupLikeRoutes(protected *gin.RouterGroup, likeController *controllers.LikeController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:postId/likes", likeController.LikePost)
		posts.DELETE("/:postId/likes", likeController.UnlikePost)
	}
}
