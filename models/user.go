package models

import (
	"time"
)

// User is soft-deleted only: IsDeleted is set and the row stays, so posts,
// comments and likes keep resolving their owner.
type User struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Email           string         `gorm:"unique;not null;size:255" json:"email"`
	Nickname        string         `gorm:"unique;not null;size:30" json:"nickname"`
	Password        string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	ProfileImageURL *string        `json:"profile_image_url"`
	IsDeleted       bool           `gorm:"not null;default:false;index" json:"is_deleted"`
	Posts           []Post         `json:"-" gorm:"foreignKey:UserID"`
	Comments        []Comment      `json:"-" gorm:"foreignKey:UserID"`
	Likes           []PostLike     `json:"-" gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) UpdateProfile(email, nickname string, profileImageURL *string) {
	u.Email = email
	u.Nickname = nickname
	u.ProfileImageURL = profileImageURL
}

func (u *User) SoftDelete() {
	u.IsDeleted = true
}
