package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Price         float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Period        string    `gorm:"size:50;default:'one-time'" json:"period"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Features      []string  `gorm:"serializer:json" json:"features"`
	ImageURL      string    `gorm:"size:512;default:''" json:"imageUrl"`
	ImagePublicID string    `gorm:"size:255;default:''" json:"imagePublicId"`
	Popular       bool      `gorm:"default:false" json:"popular"`
	Active        bool      `gorm:"default:true" json:"active"`
	Discount      int       `gorm:"default:0" json:"discount"`
	DiscountLabel string    `gorm:"size:100;default:''" json:"discountLabel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectivePrice is the authoritative server-side price: the listed price with
// the percentage discount applied, rounded to the nearest rupee.
func (p *Plan) EffectivePrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return math.Round(p.Price * (1 - float64(p.Discount)/100))
}
