package services

import (
	"context"
	"errors"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/authz"
	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/repositories"
)

// LikeService toggles the like of a user on a post. Neither direction is
// idempotent: liking twice or unliking an unliked post is an error.
type LikeService interface {
	Create(ctx context.Context, postID uint, actorID string) (*PostLikeResponse, error)
	Delete(ctx context.Context, postID uint, actorID string) (*PostLikeResponse, error)
}

type likeService struct {
	store repositories.Store
}

func NewLikeService(store repositories.Store) LikeService {
	return &likeService{store: store}
}

func duplicatedLike() error {
	return apperrors.Duplicated(CodeUserConflict, "like", "post already liked")
}

func (s *likeService) Create(ctx context.Context, postID uint, actorID string) (*PostLikeResponse, error) {
	actor, err := authz.ParseIdentity(actorID)
	if err != nil {
		return nil, err
	}

	var resp *PostLikeResponse
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		post, err := findPost(ctx, tx.Posts(), postID)
		if err != nil {
			return err
		}
		user, err := findUser(ctx, tx.Users(), actor)
		if err != nil {
			return err
		}

		_, err = tx.Likes().FindByPostAndUser(ctx, post.ID, user.ID)
		switch {
		case err == nil:
			return duplicatedLike()
		case !errors.Is(err, repositories.ErrNotFound):
			return apperrors.Internal("load like", err)
		}

		// The unique index on (user_id, post_id) rejects a concurrent twin.
		if err := tx.Likes().Create(ctx, &models.PostLike{PostID: post.ID, UserID: user.ID}); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return duplicatedLike()
			}
			return apperrors.Internal("create like", err)
		}

		count, err := tx.Likes().CountByPost(ctx, post.ID)
		if err != nil {
			return apperrors.Internal("count likes", err)
		}
		resp = &PostLikeResponse{LikeCount: count, IsLiked: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *likeService) Delete(ctx context.Context, postID uint, actorID string) (*PostLikeResponse, error) {
	actor, err := authz.ParseIdentity(actorID)
	if err != nil {
		return nil, err
	}

	var resp *PostLikeResponse
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		post, err := findPost(ctx, tx.Posts(), postID)
		if err != nil {
			return err
		}
		user, err := findUser(ctx, tx.Users(), actor)
		if err != nil {
			return err
		}

		like, err := tx.Likes().FindByPostAndUser(ctx, post.ID, user.ID)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound(CodeLikeNotFound)
		}
		if err != nil {
			return apperrors.Internal("load like", err)
		}
		if err := tx.Likes().Delete(ctx, like); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NotFound(CodeLikeNotFound)
			}
			return apperrors.Internal("delete like", err)
		}

		count, err := tx.Likes().CountByPost(ctx, post.ID)
		if err != nil {
			return apperrors.Internal("count likes", err)
		}
		resp = &PostLikeResponse{LikeCount: count, IsLiked: false}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
