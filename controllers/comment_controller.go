package controllers

import (
	"net/http"

	"github.com/community-board/api-go/services"
	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
)

type CommentController struct {
	Comments services.CommentService
}

func NewCommentController(comments services.CommentService) *CommentController {
	return &CommentController{Comments: comments}
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param comment body services.CommentRequest true "Comment"
// @Success 201 {object} services.CommentResponse
// @Router /posts/{postId}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req services.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.Comments.Create(c.Request.Context(), req, utils.ActorID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    comment,
		Message: "Comment created successfully",
	})
}

// ListComments godoc
// @Summary List the comments of a post oldest first
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Param cursor query int false "Id of the last comment of the previous page"
// @Param size query int false "Page size"
// @Success 200 {object} services.CommentPageResponse
// @Router /posts/{postId}/comments [get]
func (cc *CommentController) ListComments(c *gin.Context) {
	postID, err := idParam(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	cursor, size, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := cc.Comments.ListByPost(c.Request.Context(), postID, cursor, size, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: page})
}

func (cc *CommentController) GetComment(c *gin.Context) {
	commentID, err := idParam(c, "commentId")
	if err != nil {
		respondError(c, err)
		return
	}

	comment, err := cc.Comments.GetByID(c.Request.Context(), commentID, utils.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: comment})
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	commentID, err := idParam(c, "commentId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req services.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.Comments.Update(c.Request.Context(), req, utils.ActorID(c), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    comment,
		Message: "Comment updated successfully",
	})
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	commentID, err := idParam(c, "commentId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := cc.Comments.Delete(c.Request.Context(), commentID, utils.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
