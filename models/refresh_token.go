package models

import (
	"time"
)

type RefreshToken struct {
	ID             uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt      time.Time
	UserID         uint      `json:"userId" gorm:"not null;index"`
	User           User      `json:"user" gorm:"foreignKey:UserID"`
	Token          string    `json:"token" gorm:"not null;uniqueIndex"`
	ExpirationDate time.Time `json:"expiry" gorm:"not null"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpirationDate)
}
