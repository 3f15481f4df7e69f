package repositories

import (
	"context"

	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/pagination"
	"gorm.io/gorm"
)

type CommentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Save(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	// SliceByPost returns up to size comments of the post with id > cursor,
	// oldest first, and whether more comments exist past the page.
	SliceByPost(ctx context.Context, postID uint, cursor *uint, size int) ([]models.Comment, bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Post").Create(comment).Error)
}

func (r *commentRepository) Save(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Post").Save(comment).Error)
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error)
}

func (r *commentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, translate(err)
}

func (r *commentRepository) SliceByPost(ctx context.Context, postID uint, cursor *uint, size int) ([]models.Comment, bool, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Scopes(pagination.Scope("id", pagination.Ascending, cursor, size)).
		Find(&rows).Error
	if err != nil {
		return nil, false, translate(err)
	}
	items, hasNext := pagination.Trim(rows, size)
	return items, hasNext, nil
}
