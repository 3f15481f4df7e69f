package routes

import (
	"github.com/community-board/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupPostRoutes(public, protected *gin.RouterGroup, postController *controllers.PostController) {
	{
		public.GET("/posts", postController.ListPosts)
		public.GET("/posts/:postId", postController.GetPost)
	}

	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.PATCH("/:postId", postController.UpdatePost)
		posts.DELETE("/:postId", postController.DeletePost)
	}
}
