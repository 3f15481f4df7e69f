package controllers

import (
	"net/http"

	"github.com/community-board/api-go/services"
	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
)

type PostController struct {
	Posts services.PostService
}

func NewPostController(posts services.PostService) *PostController {
	return &PostController{Posts: posts}
}

// CreatePost godoc
// @Summary Create a new post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body services.PostRequest true "Post creation request"
// @Success 201 {object} services.PostResponse
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req services.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := pc.Posts.Create(c.Request.Context(), req, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    post,
		Message: "Post created successfully",
	})
}

// GetPost godoc
// @Summary Get a post and count the view
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} services.PostResponse
// @Router /posts/{postId} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}

	post, err := pc.Posts.GetByID(c.Request.Context(), postID, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: post})
}

// ListPosts godoc
// @Summary List posts newest first
// @Tags posts
// @Produce json
// @Param cursor query int false "Id of the last post of the previous page"
// @Param size query int false "Page size"
// @Success 200 {object} services.PostPageResponse
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	cursor, size, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := pc.Posts.List(c.Request.Context(), cursor, size, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: page})
}

// UpdatePost godoc
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param post body services.PostRequest true "Post update request"
// @Success 200 {object} services.PostResponse
// @Router /posts/{postId} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req services.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := pc.Posts.Update(c.Request.Context(), req, postID, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    post,
		Message: "Post updated successfully",
	})
}

// DeletePost godoc
// @Summary Delete own post with its comments and likes
// @Tags posts
// @Param postId path int true "Post ID"
// @Success 204
// @Router /posts/{postId} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := pc.Posts.Delete(c.Request.Context(), postID, utils.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
