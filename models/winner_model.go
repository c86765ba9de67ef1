package models

import (
	"time"

	"github.com/google/uuid"
)

type Winner struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Amount        string    `gorm:"size:50;not null" json:"amount"`
	Rank          string    `gorm:"size:20;default:'1st'" json:"rank"`
	Match         string    `gorm:"size:100;not null" json:"match"`
	ImageURL      string    `gorm:"size:512;default:''" json:"imageUrl"`
	ImagePublicID string    `gorm:"size:255;default:''" json:"imagePublicId"`
	Active        bool      `gorm:"default:true" json:"active"`
	SortOrder     int       `gorm:"default:0" json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
