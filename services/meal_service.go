package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"

	"gorm.io/gorm"
)

type MealService struct {
	db        *gorm.DB
	summaries *SummaryService
}

func NewMealService(db *gorm.DB, summaries *SummaryService) *MealService {
	return &MealService{db: db, summaries: summaries}
}

type MealInput struct {
	Name            string    `json:"name" binding:"required"`
	Calories        float64   `json:"calories"`
	Protein         float64   `json:"protein"`
	Carbs           float64   `json:"carbs"`
	Fats            float64   `json:"fats"`
	Fiber           float64   `json:"fiber"`
	Sugar           float64   `json:"sugar"`
	Sodium          float64   `json:"sodium"`
	ServingSize     string    `json:"serving_size"`
	ServingQuantity float64   `json:"serving_quantity"`
	Type            string    `json:"type"`
	AteAt           time.Time `json:"ate_at"`
	FoodID          string    `json:"food_id"`
	ImageURL        string    `json:"image_url"`
}

var mealTypes = map[string]bool{
	"breakfast": true, "lunch": true, "dinner": true, "snack": true,
}

func (in *MealInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: meal name is required", ErrValidation)
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
		return fmt.Errorf("%w: nutrition values must not be negative", ErrValidation)
	}
	if in.Type != "" && !mealTypes[in.Type] {
		return fmt.Errorf("%w: unknown meal type %q", ErrValidation, in.Type)
	}
	return nil
}

// Create logs a meal and applies its nutrition contribution to the day's
// summary. Both writes happen in one transaction: a failed summary update
// rolls the meal back too.
func (s *MealService) Create(userID uint, in MealInput) (*models.Meal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.AteAt.IsZero() {
		in.AteAt = time.Now()
	}

	meal := models.Meal{
		UserID:          userID,
		Name:            in.Name,
		Calories:        in.Calories,
		Protein:         in.Protein,
		Carbs:           in.Carbs,
		Fats:            in.Fats,
		Fiber:           in.Fiber,
		Sugar:           in.Sugar,
		Sodium:          in.Sodium,
		ServingSize:     in.ServingSize,
		ServingQuantity: in.ServingQuantity,
		Type:            in.Type,
		AteAt:           in.AteAt,
		FoodID:          in.FoodID,
		ImageURL:        in.ImageURL,
	}

	date := s.summaries.dateKey(meal.AteAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		return s.summaries.withTx(tx).
			ApplyNutritionDelta(userID, date, meal.Calories, meal.Protein, meal.Carbs, meal.Fats)
	})
	if err != nil {
		return nil, err
	}

	s.summaries.notify(userID, date)
	return &meal, nil
}

// Update edits a meal and applies the old-vs-new difference to the summary.
// If the meal moved to another calendar day, the old day loses the full old
// contribution and the new day gains the full new one.
func (s *MealService) Update(userID, mealID uint, in MealInput) (*models.Meal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var meal models.Meal
	if err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	old := meal
	oldDate := s.summaries.dateKey(old.AteAt)

	meal.Name = in.Name
	meal.Calories = in.Calories
	meal.Protein = in.Protein
	meal.Carbs = in.Carbs
	meal.Fats = in.Fats
	meal.Fiber = in.Fiber
	meal.Sugar = in.Sugar
	meal.Sodium = in.Sodium
	meal.ServingSize = in.ServingSize
	meal.ServingQuantity = in.ServingQuantity
	if in.Type != "" {
		meal.Type = in.Type
	}
	if !in.AteAt.IsZero() {
		meal.AteAt = in.AteAt
	}
	meal.FoodID = in.FoodID
	meal.ImageURL = in.ImageURL

	newDate := s.summaries.dateKey(meal.AteAt)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		sums := s.summaries.withTx(tx)
		if oldDate == newDate {
			return sums.ApplyNutritionDelta(userID, newDate,
				meal.Calories-old.Calories,
				meal.Protein-old.Protein,
				meal.Carbs-old.Carbs,
				meal.Fats-old.Fats)
		}
		if err := sums.ApplyNutritionDelta(userID, oldDate,
			-old.Calories, -old.Protein, -old.Carbs, -old.Fats); err != nil {
			return err
		}
		return sums.ApplyNutritionDelta(userID, newDate,
			meal.Calories, meal.Protein, meal.Carbs, meal.Fats)
	})
	if err != nil {
		return nil, err
	}

	s.summaries.notify(userID, newDate)
	if oldDate != newDate {
		s.summaries.notify(userID, oldDate)
	}
	return &meal, nil
}

// Delete removes a meal and subtracts its stored contribution from the
// summary. Ownership is checked before anything is written.
func (s *MealService) Delete(userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	date := s.summaries.dateKey(meal.AteAt)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&meal).Error; err != nil {
			return err
		}
		return s.summaries.withTx(tx).
			ApplyNutritionDelta(userID, date, -meal.Calories, -meal.Protein, -meal.Carbs, -meal.Fats)
	})
	if err != nil {
		return err
	}

	s.summaries.notify(userID, date)
	return nil
}

func (s *MealService) Get(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) List(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}
