package database

import (
	"fmt"
	"log"

	config "github.com/comeoffice/rank_booking/configs"
	"github.com/comeoffice/rank_booking/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		// TranslateError maps driver duplicate-key failures to
		// gorm.ErrDuplicatedKey, which is how duplicate UTR submissions
		// surface as 409s instead of raw Postgres errors.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Order{},
		&models.Plan{},
		&models.Rank{},
		&models.Winner{},
		&models.VideoProof{},
		&models.Settings{},
		&models.Admin{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminID := config.Config("ADMIN_ID")
	adminPassword := config.Config("ADMIN_PASSWORD")

	if adminID == "" || adminPassword == "" {
		log.Println("⚠️ ADMIN_ID or ADMIN_PASSWORD not set, skipping admin seed.")
		return
	}

	var count int64
	err := DB.Model(&models.Admin{}).Where("admin_id = ?", adminID).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	admin := models.Admin{
		AdminID:      adminID,
		PasswordHash: string(hashedPassword),
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
