package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID   string `gorm:"uniqueIndex;size:36;not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string

	// Profile inputs. Every derived field below is a function of these.
	Age           int
	HeightCm      float64
	WeightKg      float64
	Gender        string // male | female | other
	ActivityLevel string // sedentary | light | moderate | active | extreme
	Goal          string // weight_loss | weight_loss_aggressive | maintenance | weight_gain | muscle_building
	TargetWeight  float64

	// Derived targets, recomputed together whenever any input above changes.
	BMI                float64
	BMR                int
	TDEE               int
	IdealWeight        float64
	DailyCalorieTarget int
	DailyProteinTarget int
	DailyCarbsTarget   int
	DailyFatsTarget    int
	DailyWaterGoal     int // ml
	DailyStepGoal      int

	// Preferences
	DietType      string
	Budget        string
	Allergies     string
	DislikedFoods string

	ProfileCompleted bool
}
