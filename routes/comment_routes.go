package routes

import (
	"github.com/community-board/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupCommentRoutes(public, protected *gin.RouterGroup, commentController *controllers.CommentController) {
	{
		public.GET("/posts/:postId/comments", commentController.ListComments)
		public.GET("/comments/:commentId", commentController.GetComment)
	}

	{
		protected.POST("/posts/:postId/comments", commentController.CreateComment)
		protected.PATCH("/comments/:commentId", commentController.UpdateComment)
		protected.DELETE("/comments/:commentId", commentController.DeleteComment)
	}
}
