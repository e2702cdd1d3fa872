package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobboard/internal/models"
)

// Connect opens the Postgres connection and runs migrations.
func Connect() *gorm.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=password dbname=jobboard port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	err = db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.UserResume{},
		&models.UserNotificationSettings{},
		&models.OrganizationUserSettings{},
		&models.JobListing{},
		&models.JobListingApplication{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	return db
}
