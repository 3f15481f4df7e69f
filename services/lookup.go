package services

import (
	"context"
	"errors"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/authz"
	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/repositories"
)

// Error codes reported to clients.
const (
	CodeUserNotFound       = authz.CodeUserNotFound
	CodePostNotFound       = "POST_NOT_FOUND"
	CodeCommentNotFound    = "COMMENT_NOT_FOUND"
	CodeLikeNotFound       = "LIKE_NOT_FOUND"
	CodeUserConflict       = "USER_CONFLICT"
	CodeNoPermission       = authz.CodeNoPermission
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidToken       = "INVALID_REFRESH_TOKEN"
	CodeTokenExpired       = "REFRESH_TOKEN_EXPIRED"
	CodeGoogleDisabled     = "GOOGLE_LOGIN_DISABLED"
)

// optionalIdentity treats an empty actor id as an anonymous viewer.
func optionalIdentity(actorID string) (authz.Identity, error) {
	if actorID == "" {
		return 0, nil
	}
	return authz.ParseIdentity(actorID)
}

func findUser(ctx context.Context, users repositories.UserRepository, actor authz.Identity) (*models.User, error) {
	user, err := users.FindByID(ctx, actor.Uint())
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NotFound(CodeUserNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("load user", err)
	}
	return user, nil
}

// findActor parses actorID and loads the acting user.
func findActor(ctx context.Context, users repositories.UserRepository, actorID string) (*models.User, error) {
	actor, err := authz.ParseIdentity(actorID)
	if err != nil {
		return nil, err
	}
	return findUser(ctx, users, actor)
}

func findPost(ctx context.Context, posts repositories.PostRepository, postID uint) (*models.Post, error) {
	post, err := posts.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NotFound(CodePostNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("load post", err)
	}
	return post, nil
}

func findComment(ctx context.Context, comments repositories.CommentRepository, commentID uint) (*models.Comment, error) {
	comment, err := comments.FindByID(ctx, commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NotFound(CodeCommentNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("load comment", err)
	}
	return comment, nil
}

// isLikedBy reports whether the viewer has liked the post. Anonymous
// viewers never have.
func isLikedBy(ctx context.Context, likes repositories.LikeRepository, postID uint, viewer authz.Identity) (bool, error) {
	if viewer == 0 {
		return false, nil
	}
	_, err := likes.FindByPostAndUser(ctx, postID, viewer.Uint())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, apperrors.Internal("load like", err)
	}
}

// postCounts counts likes and comments of a post.
func postCounts(ctx context.Context, tx repositories.Store, postID uint) (likeCount, commentCount int64, err error) {
	likeCount, err = tx.Likes().CountByPost(ctx, postID)
	if err != nil {
		return 0, 0, apperrors.Internal("count likes", err)
	}
	commentCount, err = tx.Comments().CountByPost(ctx, postID)
	if err != nil {
		return 0, 0, apperrors.Internal("count comments", err)
	}
	return likeCount, commentCount, nil
}
