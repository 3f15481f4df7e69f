package repositories

import (
	"context"

	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/pagination"
	"gorm.io/gorm"
)

type PostRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Save(ctx context.Context, post *models.Post) error
	ReplaceImages(ctx context.Context, postID uint, urls []string) error
	Delete(ctx context.Context, post *models.Post) error
	IncrementViewCount(ctx context.Context, id uint) error
	// Slice returns up to size posts with id < cursor, newest first, and
	// whether more posts exist past the page.
	Slice(ctx context.Context, cursor *uint, size int) ([]models.PostSummary, bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_images.order_index ASC")
		}).
		First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(post).Error)
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Images").Save(post).Error)
}

func (r *postRepository) ReplaceImages(ctx context.Context, postID uint, urls []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("post_id = ?", postID).Delete(&models.PostImage{}).Error; err != nil {
		return translate(err)
	}
	if len(urls) == 0 {
		return nil
	}
	images := models.NewPostImages(urls)
	for i := range images {
		images[i].PostID = postID
	}
	return translate(db.Create(&images).Error)
}

// Delete removes the post with its likes, comments and images. Callers run
// it inside a transaction; the FK cascade covers rows added concurrently.
func (r *postRepository) Delete(ctx context.Context, post *models.Post) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
		return translate(err)
	}
	if err := db.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		return translate(err)
	}
	if err := db.Where("post_id = ?", post.ID).Delete(&models.PostImage{}).Error; err != nil {
		return translate(err)
	}
	return translate(db.Delete(&models.Post{}, post.ID).Error)
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Slice(ctx context.Context, cursor *uint, size int) ([]models.PostSummary, bool, error) {
	var rows []models.PostSummary
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select(`
			posts.id,
			posts.title,
			posts.user_id,
			posts.view_count,
			posts.created_at,
			users.nickname as author_nickname,
			users.profile_image_url as author_profile_image,
			(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) as like_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comment_count,
			ARRAY(SELECT post_images.image_url FROM post_images WHERE post_images.post_id = posts.id ORDER BY post_images.order_index) as image_urls
		`).
		Joins("JOIN users ON posts.user_id = users.id").
		Scopes(pagination.Scope("posts.id", pagination.Descending, cursor, size)).
		Scan(&rows).Error
	if err != nil {
		return nil, false, translate(err)
	}
	items, hasNext := pagination.Trim(rows, size)
	return items, hasNext, nil
}
