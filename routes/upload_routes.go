package routes

import (
	"github.com/community-board/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/presign", uploadController.GetPresignedURL)
	}
}
