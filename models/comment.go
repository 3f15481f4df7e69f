package models

import (
	"time"
)

type Comment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"not null;type:text"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID"`
	PostID    uint   `gorm:"not null;index"`
	Post      Post   `gorm:"foreignKey:PostID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) Update(content string) {
	c.Content = content
}
