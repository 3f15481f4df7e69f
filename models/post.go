package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string      `json:"title" gorm:"not null;size:26"`
	Content   string      `json:"content" gorm:"not null;type:text"`
	UserID    uint        `json:"userId" gorm:"not null;index"`
	User      User        `json:"user" gorm:"foreignKey:UserID"`
	ViewCount int64       `json:"viewCount" gorm:"not null;default:0"`
	Images    []PostImage `json:"images" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments  []Comment   `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes     []PostLike  `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (p *Post) Update(title, content string) {
	p.Title = title
	p.Content = content
}

// ImageURLs returns the attached image URLs in display order.
func (p *Post) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}

// PostSummary is a read-only projection used by post listings. Counts and
// image URLs are computed by the listing query, never stored.
type PostSummary struct {
	ID                 uint           `gorm:"column:id"`
	Title              string         `gorm:"column:title"`
	UserID             uint           `gorm:"column:user_id"`
	AuthorNickname     string         `gorm:"column:author_nickname"`
	AuthorProfileImage *string        `gorm:"column:author_profile_image"`
	ViewCount          int64          `gorm:"column:view_count"`
	LikeCount          int64          `gorm:"column:like_count"`
	CommentCount       int64          `gorm:"column:comment_count"`
	ImageURLs          pq.StringArray `gorm:"column:image_urls;type:text[]"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
}
