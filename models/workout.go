package models

import (
	"time"

	"gorm.io/gorm"
)

type Workout struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`
	Name   string
	Type   string

	DurationMin    int
	CaloriesBurned float64 // provided, or estimated from intensity × duration
	Intensity      string  // low | medium | high

	PerformedAt time.Time `gorm:"index;not null"`
	Notes       string

	Exercises []WorkoutExercise
}

type WorkoutExercise struct {
	gorm.Model
	WorkoutID uint `gorm:"index;not null"`
	Name      string
	Sets      []ExerciseSet
}

type ExerciseSet struct {
	gorm.Model
	WorkoutExerciseID uint `gorm:"index;not null"`
	Reps              int
	Weight            float64
	DurationSec       int
	DistanceM         float64
}
