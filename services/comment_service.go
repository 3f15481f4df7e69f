package services

import (
	"context"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/authz"
	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/pagination"
	"github.com/community-board/api-go/repositories"
)

type CommentService interface {
	Create(ctx context.Context, req CommentRequest, actorID string, postID uint) (*CommentResponse, error)
	GetByID(ctx context.Context, commentID uint, actorID string) (*CommentResponse, error)
	ListByPost(ctx context.Context, postID uint, cursor *uint, size int, actorID string) (*CommentPageResponse, error)
	Update(ctx context.Context, req CommentRequest, actorID string, commentID uint) (*CommentResponse, error)
	Delete(ctx context.Context, commentID uint, actorID string) error
}

type commentService struct {
	store  repositories.Store
	paging pagination.Policy
}

func NewCommentService(store repositories.Store, paging pagination.Policy) CommentService {
	return &commentService{store: store, paging: paging}
}

func (s *commentService) Create(ctx context.Context, req CommentRequest, actorID string, postID uint) (*CommentResponse, error) {
	var resp *CommentResponse
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		post, err := findPost(ctx, tx.Posts(), postID)
		if err != nil {
			return err
		}

		comment := &models.Comment{
			Content: req.Content,
			UserID:  user.ID,
			PostID:  post.ID,
		}
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return apperrors.Internal("create comment", err)
		}
		comment.User = *user
		resp = newCommentResponse(comment, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *commentService) GetByID(ctx context.Context, commentID uint, actorID string) (*CommentResponse, error) {
	viewer, err := optionalIdentity(actorID)
	if err != nil {
		return nil, err
	}
	comment, err := findComment(ctx, s.store.Comments(), commentID)
	if err != nil {
		return nil, err
	}
	return newCommentResponse(comment, viewer.Owns(comment.UserID)), nil
}

// ListByPost pages the comments of a post oldest first.
func (s *commentService) ListByPost(ctx context.Context, postID uint, cursor *uint, size int, actorID string) (*CommentPageResponse, error) {
	viewer, err := optionalIdentity(actorID)
	if err != nil {
		return nil, err
	}
	if _, err := findPost(ctx, s.store.Posts(), postID); err != nil {
		return nil, err
	}

	size = s.paging.Normalize(size)
	rows, hasNext, err := s.store.Comments().SliceByPost(ctx, postID, cursor, size)
	if err != nil {
		return nil, apperrors.Internal("list comments", err)
	}
	page := pagination.Map(
		pagination.NewPage(rows, hasNext, func(c models.Comment) uint { return c.ID }),
		func(c models.Comment) CommentResponse {
			return *newCommentResponse(&c, viewer.Owns(c.UserID))
		},
	)
	return &CommentPageResponse{CommentList: page.Items, Cursor: page.Cursor}, nil
}

func (s *commentService) Update(ctx context.Context, req CommentRequest, actorID string, commentID uint) (*CommentResponse, error) {
	var resp *CommentResponse
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		comment, err := findComment(ctx, tx.Comments(), commentID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(authz.Identity(user.ID), comment.UserID); err != nil {
			return err
		}

		comment.Update(req.Content)
		if err := tx.Comments().Save(ctx, comment); err != nil {
			return apperrors.Internal("update comment", err)
		}
		resp = newCommentResponse(comment, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *commentService) Delete(ctx context.Context, commentID uint, actorID string) error {
	return s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		comment, err := findComment(ctx, tx.Comments(), commentID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(authz.Identity(user.ID), comment.UserID); err != nil {
			return err
		}
		if err := tx.Comments().Delete(ctx, comment); err != nil {
			return apperrors.Internal("delete comment", err)
		}
		return nil
	})
}
