package repositories

import (
	"context"

	"github.com/community-board/api-go/models"
	"gorm.io/gorm"
)

type LikeRepository interface {
	FindByPostAndUser(ctx context.Context, postID, userID uint) (*models.PostLike, error)
	Create(ctx context.Context, like *models.PostLike) error
	Delete(ctx context.Context, like *models.PostLike) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	// LikedPostIDs reports which of postIDs the user has liked.
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func (r *likeRepository) FindByPostAndUser(ctx context.Context, postID, userID uint) (*models.PostLike, error) {
	var like models.PostLike
	err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.PostLike) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Post").Create(like).Error)
}

// Delete reports ErrNotFound when the like was already removed, e.g. by a
// concurrent unlike that committed first.
func (r *likeRepository) Delete(ctx context.Context, like *models.PostLike) error {
	result := r.db.WithContext(ctx).Delete(&models.PostLike{}, like.ID)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, translate(err)
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
