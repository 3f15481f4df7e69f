package models

import (
	"time"
)

// PostImage is an image attached to a post.
type PostImage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	ImageURL   string    `gorm:"not null" json:"image_url"`
	OrderIndex int       `gorm:"default:0" json:"order_index"`
}

// NewPostImages keeps the order of urls in OrderIndex.
func NewPostImages(urls []string) []PostImage {
	images := make([]PostImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, PostImage{ImageURL: url, OrderIndex: i})
	}
	return images
}
