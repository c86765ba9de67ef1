package models

import (
	"time"

	"github.com/google/uuid"
)

type VideoProof struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Amount       string    `gorm:"size:50;not null" json:"amount"`
	YoutubeURL   string    `gorm:"size:512;not null" json:"youtubeUrl"`
	ThumbnailURL string    `gorm:"size:512;default:''" json:"thumbnailUrl"`
	Date         string    `gorm:"size:50;not null" json:"date"`
	Active       bool      `gorm:"default:true" json:"active"`
	SortOrder    int       `gorm:"default:0" json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
