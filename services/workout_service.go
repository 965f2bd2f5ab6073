package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"

	"gorm.io/gorm"
)

// intensityMultipliers estimate calories per minute when a workout doesn't
// come with an explicit burn figure.
var intensityMultipliers = map[string]float64{
	"high":   10,
	"medium": 7,
	"low":    4,
}

// EstimateWorkoutCalories returns duration × intensity multiplier. Unknown
// intensities count as medium.
func EstimateWorkoutCalories(durationMin int, intensity string) float64 {
	mult, ok := intensityMultipliers[intensity]
	if !ok {
		mult = intensityMultipliers["medium"]
	}
	return float64(durationMin) * mult
}

type WorkoutService struct {
	db        *gorm.DB
	summaries *SummaryService
}

func NewWorkoutService(db *gorm.DB, summaries *SummaryService) *WorkoutService {
	return &WorkoutService{db: db, summaries: summaries}
}

type ExerciseSetInput struct {
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	DurationSec int     `json:"duration_sec"`
	DistanceM   float64 `json:"distance_m"`
}

type WorkoutExerciseInput struct {
	Name string             `json:"name"`
	Sets []ExerciseSetInput `json:"sets"`
}

type WorkoutInput struct {
	Name           string                 `json:"name" binding:"required"`
	Type           string                 `json:"type"`
	DurationMin    int                    `json:"duration_min"`
	CaloriesBurned float64                `json:"calories_burned"`
	Intensity      string                 `json:"intensity"`
	PerformedAt    time.Time              `json:"performed_at"`
	Notes          string                 `json:"notes"`
	Exercises      []WorkoutExerciseInput `json:"exercises"`
}

func (in *WorkoutInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: workout name is required", ErrValidation)
	}
	if in.DurationMin < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}
	if in.CaloriesBurned < 0 {
		return fmt.Errorf("%w: calories burned must not be negative", ErrValidation)
	}
	return nil
}

func (in *WorkoutInput) toModel(userID uint) models.Workout {
	w := models.Workout{
		UserID:         userID,
		Name:           in.Name,
		Type:           in.Type,
		DurationMin:    in.DurationMin,
		CaloriesBurned: in.CaloriesBurned,
		Intensity:      in.Intensity,
		PerformedAt:    in.PerformedAt,
		Notes:          in.Notes,
	}
	if w.CaloriesBurned == 0 && w.DurationMin > 0 {
		w.CaloriesBurned = EstimateWorkoutCalories(w.DurationMin, w.Intensity)
	}
	for _, ex := range in.Exercises {
		we := models.WorkoutExercise{Name: ex.Name}
		for _, set := range ex.Sets {
			we.Sets = append(we.Sets, models.ExerciseSet{
				Reps:        set.Reps,
				Weight:      set.Weight,
				DurationSec: set.DurationSec,
				DistanceM:   set.DistanceM,
			})
		}
		w.Exercises = append(w.Exercises, we)
	}
	return w
}

// Create logs a workout and adds its burn and minutes to the day's summary
// in the same transaction.
func (s *WorkoutService) Create(userID uint, in WorkoutInput) (*models.Workout, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.PerformedAt.IsZero() {
		in.PerformedAt = time.Now()
	}

	workout := in.toModel(userID)
	date := s.summaries.dateKey(workout.PerformedAt)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workout).Error; err != nil {
			return err
		}
		return s.summaries.withTx(tx).
			ApplyWorkoutDelta(userID, date, workout.CaloriesBurned, float64(workout.DurationMin))
	})
	if err != nil {
		return nil, err
	}

	s.summaries.notify(userID, date)
	return &workout, nil
}

// Update edits a workout, replaces its exercise list, and applies the
// old-vs-new burn and duration difference to the summary.
func (s *WorkoutService) Update(userID, workoutID uint, in WorkoutInput) (*models.Workout, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var old models.Workout
	if err := s.db.Where("id = ? AND user_id = ?", workoutID, userID).First(&old).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldDate := s.summaries.dateKey(old.PerformedAt)
	if in.PerformedAt.IsZero() {
		in.PerformedAt = old.PerformedAt
	}

	updated := in.toModel(userID)
	updated.ID = old.ID
	updated.CreatedAt = old.CreatedAt
	newDate := s.summaries.dateKey(updated.PerformedAt)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Replace exercises wholesale; set rows hang off them.
		var exIDs []uint
		if err := tx.Model(&models.WorkoutExercise{}).
			Where("workout_id = ?", old.ID).
			Pluck("id", &exIDs).Error; err != nil {
			return err
		}
		if len(exIDs) > 0 {
			if err := tx.Where("workout_exercise_id IN ?", exIDs).Delete(&models.ExerciseSet{}).Error; err != nil {
				return err
			}
			if err := tx.Where("workout_id = ?", old.ID).Delete(&models.WorkoutExercise{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}

		sums := s.summaries.withTx(tx)
		if oldDate == newDate {
			return sums.ApplyWorkoutDelta(userID, newDate,
				updated.CaloriesBurned-old.CaloriesBurned,
				float64(updated.DurationMin-old.DurationMin))
		}
		if err := sums.ApplyWorkoutDelta(userID, oldDate,
			-old.CaloriesBurned, -float64(old.DurationMin)); err != nil {
			return err
		}
		return sums.ApplyWorkoutDelta(userID, newDate,
			updated.CaloriesBurned, float64(updated.DurationMin))
	})
	if err != nil {
		return nil, err
	}

	s.summaries.notify(userID, newDate)
	if oldDate != newDate {
		s.summaries.notify(userID, oldDate)
	}
	return &updated, nil
}

// Delete removes a workout and subtracts its stored contribution.
func (s *WorkoutService) Delete(userID, workoutID uint) error {
	var workout models.Workout
	if err := s.db.Where("id = ? AND user_id = ?", workoutID, userID).First(&workout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	date := s.summaries.dateKey(workout.PerformedAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var exIDs []uint
		if err := tx.Model(&models.WorkoutExercise{}).
			Where("workout_id = ?", workout.ID).
			Pluck("id", &exIDs).Error; err != nil {
			return err
		}
		if len(exIDs) > 0 {
			if err := tx.Where("workout_exercise_id IN ?", exIDs).Delete(&models.ExerciseSet{}).Error; err != nil {
				return err
			}
			if err := tx.Where("workout_id = ?", workout.ID).Delete(&models.WorkoutExercise{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&workout).Error; err != nil {
			return err
		}
		return s.summaries.withTx(tx).
			ApplyWorkoutDelta(userID, date, -workout.CaloriesBurned, -float64(workout.DurationMin))
	})
	if err != nil {
		return err
	}

	s.summaries.notify(userID, date)
	return nil
}

func (s *WorkoutService) Get(userID, workoutID uint) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.
		Preload("Exercises.Sets").
		Where("id = ? AND user_id = ?", workoutID, userID).
		First(&workout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (s *WorkoutService) List(userID uint) ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.db.
		Preload("Exercises.Sets").
		Where("user_id = ?", userID).
		Order("performed_at DESC").
		Find(&workouts).Error
	return workouts, err
}
