package repositories

import (
	"context"

	"github.com/community-board/api-go/models"
	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token *models.RefreshToken) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(token).Error)
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&refreshToken).Error; err != nil {
		return nil, translate(err)
	}
	return &refreshToken, nil
}

// Delete reports ErrNotFound when no row was removed, so a token can only be
// consumed once.
func (r *refreshTokenRepository) Delete(ctx context.Context, token *models.RefreshToken) error {
	result := r.db.WithContext(ctx).Delete(&models.RefreshToken{}, token.ID)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *refreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return translate(r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error)
}
