package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeaturedMatch struct {
	Team1Name  string `json:"team1Name"`
	Team1Short string `json:"team1Short"`
	Team1Color string `json:"team1Color"`
	Team2Name  string `json:"team2Name"`
	Team2Short string `json:"team2Short"`
	Team2Color string `json:"team2Color"`
	MatchTime  string `json:"matchTime"`
	Venue      string `json:"venue"`
	Tournament string `json:"tournament"`
	IsLive     bool   `json:"isLive"`
}

type EmailSettings struct {
	Enabled     bool   `json:"enabled"`
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
	BrevoAPIKey string `json:"brevoApiKey"`
}

// Settings is a singleton record, lazily created on first access.
type Settings struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UpiID          string    `gorm:"size:255;default:'example@upi'" json:"upiId"`
	UpiName        string    `gorm:"size:255;default:'Rank Booking'" json:"upiName"`
	TelegramLink   string    `gorm:"size:512;default:''" json:"telegramLink"`
	WhatsappNumber string    `gorm:"size:20;default:''" json:"whatsappNumber"`
	ContactNumber  string    `gorm:"size:20;default:''" json:"contactNumber"`

	FeaturedMatch FeaturedMatch `gorm:"serializer:json" json:"featuredMatch"`
	EmailSettings EmailSettings `gorm:"serializer:json" json:"emailSettings"`

	CountdownDeadline *time.Time `json:"countdownDeadline"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func GetSettings(db *gorm.DB) (Settings, error) {
	var settings Settings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = Settings{
			UpiID:   "example@upi",
			UpiName: "Rank Booking",
		}
		if createErr := db.Create(&settings).Error; createErr != nil {
			return settings, createErr
		}
		return settings, nil
	}
	return settings, err
}
