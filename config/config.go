package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// UTCOffsetMin is the fixed offset (minutes east of UTC) used for every
// day-bucketing decision: summary date keys, the step-sync window, streaks.
// Defaults to IST (+05:30).
var UTCOffsetMin = 330

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if v := os.Getenv("FIT_SYNC_UTC_OFFSET_MIN"); v != "" {
		off, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid FIT_SYNC_UTC_OFFSET_MIN: %v", err)
		}
		UTCOffsetMin = off
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate runs schema migration for every model. Split out of InitDB so
// tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.DailySummary{},
		&models.Meal{},
		&models.Workout{},
		&models.WorkoutExercise{},
		&models.ExerciseSet{},
		&models.Exercise{},
		&models.FitnessToken{},
	)
}
