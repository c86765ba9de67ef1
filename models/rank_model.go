package models

import (
	"time"

	"github.com/google/uuid"
)

type Rank struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RankNumber      int       `gorm:"uniqueIndex;not null" json:"rankNumber"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	OriginalPrice   float64   `gorm:"type:numeric(10,2);not null" json:"originalPrice"`
	DiscountedPrice float64   `gorm:"type:numeric(10,2);not null" json:"discountedPrice"`
	BadgeColor      string    `gorm:"size:20;default:'#FFD700'" json:"badgeColor"`
	Features        []string  `gorm:"serializer:json" json:"features"`
	Active          bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
