package services

import (
	"context"
	"errors"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/authz"
	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/pagination"
	"github.com/community-board/api-go/repositories"
)

type PostService interface {
	Create(ctx context.Context, req PostRequest, actorID string) (*PostResponse, error)
	GetByID(ctx context.Context, postID uint, actorID string) (*PostResponse, error)
	Update(ctx context.Context, req PostRequest, postID uint, actorID string) (*PostResponse, error)
	Delete(ctx context.Context, postID uint, actorID string) error
	List(ctx context.Context, cursor *uint, size int, actorID string) (*PostPageResponse, error)
}

// PostServiceConfig tunes listing behaviour.
type PostServiceConfig struct {
	Paging pagination.Policy
	// ResolveViewerInList fills isAuthor and isLiked on listed posts when the
	// request carries an identity. Listings stay identity-free otherwise.
	ResolveViewerInList bool
}

type postService struct {
	store repositories.Store
	cfg   PostServiceConfig
}

func NewPostService(store repositories.Store, cfg PostServiceConfig) PostService {
	return &postService{store: store, cfg: cfg}
}

func (s *postService) Create(ctx context.Context, req PostRequest, actorID string) (*PostResponse, error) {
	var resp *PostResponse
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}

		post := &models.Post{
			Title:   req.Title,
			Content: req.Content,
			UserID:  user.ID,
			Images:  models.NewPostImages(req.ImageURLs),
		}
		if err := tx.Posts().Create(ctx, post); err != nil {
			return apperrors.Internal("create post", err)
		}
		post.User = *user
		resp = newPostResponse(post, true, false, 0, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID loads a post for display and counts the read. Every call bumps the
// view count, whoever the viewer is.
func (s *postService) GetByID(ctx context.Context, postID uint, actorID string) (*PostResponse, error) {
	viewer, err := optionalIdentity(actorID)
	if err != nil {
		return nil, err
	}

	var resp *PostResponse
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		post, err := findPost(ctx, tx.Posts(), postID)
		if err != nil {
			return err
		}
		if err := tx.Posts().IncrementViewCount(ctx, post.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NotFound(CodePostNotFound)
			}
			return apperrors.Internal("increment view count", err)
		}
		post.ViewCount++

		likeCount, commentCount, err := postCounts(ctx, tx, post.ID)
		if err != nil {
			return err
		}
		liked, err := isLikedBy(ctx, tx.Likes(), post.ID, viewer)
		if err != nil {
			return err
		}
		resp = newPostResponse(post, viewer.Owns(post.UserID), liked, likeCount, commentCount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Update replaces title and content. Images are replaced only when the
// request carries an image list; a nil list keeps the current images.
func (s *postService) Update(ctx context.Context, req PostRequest, postID uint, actorID string) (*PostResponse, error) {
	actor, err := authz.ParseIdentity(actorID)
	if err != nil {
		return nil, err
	}

	var resp *PostResponse
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		post, err := findPost(ctx, tx.Posts(), postID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(actor, post.UserID); err != nil {
			return err
		}

		post.Update(req.Title, req.Content)
		if err := tx.Posts().Save(ctx, post); err != nil {
			return apperrors.Internal("update post", err)
		}
		if req.ImageURLs != nil {
			if err := tx.Posts().ReplaceImages(ctx, post.ID, req.ImageURLs); err != nil {
				return apperrors.Internal("replace post images", err)
			}
			post.Images = models.NewPostImages(req.ImageURLs)
		}

		likeCount, commentCount, err := postCounts(ctx, tx, post.ID)
		if err != nil {
			return err
		}
		liked, err := isLikedBy(ctx, tx.Likes(), post.ID, actor)
		if err != nil {
			return err
		}
		resp = newPostResponse(post, true, liked, likeCount, commentCount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *postService) Delete(ctx context.Context, postID uint, actorID string) error {
	return s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		post, err := findPost(ctx, tx.Posts(), postID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(authz.Identity(user.ID), post.UserID); err != nil {
			return err
		}
		if err := tx.Posts().Delete(ctx, post); err != nil {
			return apperrors.Internal("delete post", err)
		}
		return nil
	})
}

// List pages posts newest first. actorID may be empty.
func (s *postService) List(ctx context.Context, cursor *uint, size int, actorID string) (*PostPageResponse, error) {
	size = s.cfg.Paging.Normalize(size)

	rows, hasNext, err := s.store.Posts().Slice(ctx, cursor, size)
	if err != nil {
		return nil, apperrors.Internal("list posts", err)
	}
	page := pagination.Map(
		pagination.NewPage(rows, hasNext, func(p models.PostSummary) uint { return p.ID }),
		newPostSummaryResponse,
	)

	if s.cfg.ResolveViewerInList && actorID != "" {
		if err := s.resolveViewer(ctx, page.Items, actorID); err != nil {
			return nil, err
		}
	}
	return &PostPageResponse{PostList: page.Items, Cursor: page.Cursor}, nil
}

func (s *postService) resolveViewer(ctx context.Context, items []PostSummaryResponse, actorID string) error {
	viewer, err := authz.ParseIdentity(actorID)
	if err != nil {
		return err
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PostID)
	}
	liked, err := s.store.Likes().LikedPostIDs(ctx, viewer.Uint(), ids)
	if err != nil {
		return apperrors.Internal("load liked posts", err)
	}
	for i := range items {
		isAuthor := viewer.Owns(items[i].Author.UserID)
		isLiked := liked[items[i].PostID]
		items[i].IsAuthor = &isAuthor
		items[i].IsLiked = &isLiked
	}
	return nil
}
