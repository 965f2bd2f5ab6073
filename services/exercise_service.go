package services

import (
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExerciseService struct {
	db *gorm.DB
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

func (s *ExerciseService) List(muscleGroup, difficulty string) ([]models.Exercise, error) {
	q := s.db.Order("name ASC")
	if muscleGroup != "" {
		q = q.Where("muscle_group = ?", muscleGroup)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	var out []models.Exercise
	err := q.Find(&out).Error
	return out, err
}

// DefaultExercises is the built-in catalog seeded at startup. Seeding skips
// names that already exist, so user-visible edits survive restarts.
var DefaultExercises = []models.Exercise{
	{Name: "Push Up", MuscleGroup: "chest", Type: "strength", Difficulty: "beginner", CaloriesPerMin: 7},
	{Name: "Squat", MuscleGroup: "legs", Type: "strength", Difficulty: "beginner", CaloriesPerMin: 8},
	{Name: "Deadlift", MuscleGroup: "back", Type: "strength", Difficulty: "advanced", CaloriesPerMin: 9},
	{Name: "Plank", MuscleGroup: "core", Type: "strength", Difficulty: "beginner", CaloriesPerMin: 4},
	{Name: "Running", MuscleGroup: "legs", Type: "cardio", Difficulty: "intermediate", CaloriesPerMin: 10},
	{Name: "Cycling", MuscleGroup: "legs", Type: "cardio", Difficulty: "beginner", CaloriesPerMin: 8},
	{Name: "Jump Rope", MuscleGroup: "full_body", Type: "cardio", Difficulty: "intermediate", CaloriesPerMin: 12},
	{Name: "Pull Up", MuscleGroup: "back", Type: "strength", Difficulty: "advanced", CaloriesPerMin: 8},
	{Name: "Bench Press", MuscleGroup: "chest", Type: "strength", Difficulty: "intermediate", CaloriesPerMin: 6},
	{Name: "Burpees", MuscleGroup: "full_body", Type: "cardio", Difficulty: "advanced", CaloriesPerMin: 14},
}

// Seed inserts catalog rows, skipping names that already exist.
func (s *ExerciseService) Seed(exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&exercises).Error
}
