package controllers

import (
	"net/http"

	"github.com/community-board/api-go/services"
	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
)

type LikeController struct {
	Likes services.LikeService
}

func NewLikeController(likes services.LikeService) *LikeController {
	return &LikeController{Likes: likes}
}

// LikePost godoc
// @Summary Like a post
// @Description Fails with 409 when the post is already liked
// @Tags likes
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} services.PostLikeResponse
// @Router /posts/{postId}/likes [post]
func (lc *LikeController) LikePost(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}

	like, err := lc.Likes.Create(c.Request.Context(), postID, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: like})
}

// UnlikePost godoc
// @Summary Remove the like of a post
// @Description Fails with 404 when the post is not liked
// @Tags likes
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} services.PostLikeResponse
// @Router /posts/{postId}/likes [delete]
func (lc *LikeController) UnlikePost(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}

	like, err := lc.Likes.Delete(c.Request.Context(), postID, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: like})
}
