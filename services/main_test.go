package services

import (
	"testing"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/config"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testOffsetMin = 330 // +05:30, the default sync offset

// newTestDB opens an in-memory sqlite database with the full schema. The
// pool is pinned to one connection so the shared in-memory database survives
// and concurrent callers serialize instead of tripping sqlite locking.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// newTestUser persists a user with a complete profile and derived targets.
func newTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		UserID:        uuid.NewString(),
		Email:         uuid.NewString() + "@example.com",
		Password:      "not-a-real-hash",
		FullName:      "Test User",
		Age:           30,
		HeightCm:      175,
		WeightKg:      70,
		Gender:        "male",
		ActivityLevel: utils.ActivityModerate,
		Goal:          utils.GoalMaintenance,
	}
	applyDerivedTargets(&user)
	user.ProfileCompleted = true
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestSummaryService(db *gorm.DB) *SummaryService {
	return NewSummaryService(db, nil, testOffsetMin)
}

// mustDayInstant returns noon of the given date key in the test offset zone,
// an instant that unambiguously buckets into that day.
func mustDayInstant(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := utils.ParseDateKey(date)
	require.NoError(t, err)
	zone := utils.ZoneForOffset(testOffsetMin)
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, zone)
}
