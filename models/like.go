package models

import (
	"time"
)

// PostLike is unique per (user, post); the index is the last line of
// defence against concurrent double likes.
type PostLike struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PostID    uint      `gorm:"column:post_id;not null;uniqueIndex:idx_post_likes_user_post;index"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_post_likes_user_post"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
