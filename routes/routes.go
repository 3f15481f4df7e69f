package routes

import (
	"context"
	"net/http"

	"github.com/community-board/api-go/controllers"
	"github.com/community-board/api-go/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers is everything the router dispatches to.
type Handlers struct {
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Validation *controllers.ValidationController
	Posts      *controllers.PostController
	Comments   *controllers.CommentController
	Likes      *controllers.LikeController
	// Uploads is nil when object storage is not configured.
	Uploads *controllers.UploadController

	Tokens  middleware.AccessTokenParser
	Metrics http.Handler
	Health  func(ctx context.Context) error
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}
	r.GET("/healthz", func(c *gin.Context) {
		if h.Health != nil {
			if err := h.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes, identified when a token is sent
	public := r.Group("/api")
	public.Use(middleware.OptionalAuth(h.Tokens))

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(h.Tokens))

	SetupAuthRoutes(r.Group("/api"), h.Auth)
	SetupUserRoutes(public, protected, h.Users, h.Validation)
	SetupPostRoutes(public, protected, h.Posts)
	SetupCommentRoutes(public, protected, h.Comments)
	SetupLikeRoutes(protected, h.Likes)
	if h.Uploads != nil {
		SetupUploadRoutes(protected, h.Uploads)
	}
}
