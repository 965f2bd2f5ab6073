package models

import (
	"time"

	"gorm.io/gorm"
)

// FitnessToken holds a user's credential for the external step provider.
// The token contents are opaque to the sync flow; only ExpiresAt is
// interpreted locally.
type FitnessToken struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null"`
	Provider     string `gorm:"size:32"`
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
