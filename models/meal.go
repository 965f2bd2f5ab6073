package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal is one logged food entry with its nutrition snapshot. The snapshot is
// what reconciliation deltas are computed from, so it never changes without a
// matching DailySummary update.
type Meal struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`
	Name   string

	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Fiber    float64
	Sugar    float64
	Sodium   float64 // mg

	ServingSize     string
	ServingQuantity float64

	Type  string    // breakfast | lunch | dinner | snack
	AteAt time.Time `gorm:"index;not null"`

	FoodID   string
	ImageURL string
}
