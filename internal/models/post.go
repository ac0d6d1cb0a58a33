package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog entry. The author is referenced by UserID and joined
// at read time so responses carry the author's username.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Summary   string         `json:"summary"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Cover     string         `json:"cover"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Likes     int            `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
