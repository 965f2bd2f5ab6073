package models

import (
	"gorm.io/gorm"
)

// Exercise is catalog reference data, not part of the aggregation flow.
type Exercise struct {
	gorm.Model
	Name           string `gorm:"uniqueIndex;not null"`
	MuscleGroup    string
	Type           string
	Difficulty     string
	CaloriesPerMin float64
	VideoURL       string
	ImageURL       string
}
