package services

import (
	"errors"
	"fmt"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

var validActivityLevels = map[string]bool{
	utils.ActivitySedentary: true,
	utils.ActivityLight:     true,
	utils.ActivityModerate:  true,
	utils.ActivityActive:    true,
	utils.ActivityExtreme:   true,
}

var validGoals = map[string]bool{
	utils.GoalWeightLoss:           true,
	utils.GoalWeightLossAggressive: true,
	utils.GoalMaintenance:          true,
	utils.GoalWeightGain:           true,
	utils.GoalMuscleBuilding:       true,
}

// applyDerivedTargets re-runs the whole calculator pipeline and writes every
// derived field. This is the only way derived fields change; partial
// recomputes would leave them stale relative to their inputs.
func applyDerivedTargets(u *models.User) {
	t := utils.CalculateTargets(u.Age, u.HeightCm, u.WeightKg, u.Gender, u.ActivityLevel, u.Goal)
	u.BMI = t.BMI
	u.BMR = t.BMR
	u.TDEE = t.TDEE
	u.IdealWeight = t.IdealWeight
	u.DailyCalorieTarget = t.DailyCalorieTarget
	u.DailyProteinTarget = t.DailyProteinTarget
	u.DailyCarbsTarget = t.DailyCarbsTarget
	u.DailyFatsTarget = t.DailyFatsTarget
	u.DailyWaterGoal = t.DailyWaterGoal
	u.DailyStepGoal = t.DailyStepGoal
}

func profileComplete(u *models.User) bool {
	return u.Age > 0 && u.HeightCm > 0 && u.WeightKg > 0 &&
		u.Gender != "" && u.ActivityLevel != "" && u.Goal != ""
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type ProfileInput struct {
	FullName      string  `json:"full_name"`
	Age           int     `json:"age"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	TargetWeight  float64 `json:"target_weight"`
}

func (in *ProfileInput) validate() error {
	if in.Age < 0 || in.HeightCm < 0 || in.WeightKg < 0 || in.TargetWeight < 0 {
		return fmt.Errorf("%w: profile numbers must not be negative", ErrValidation)
	}
	if in.Gender != "" && !validGenders[in.Gender] {
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, in.Gender)
	}
	if in.ActivityLevel != "" && !validActivityLevels[in.ActivityLevel] {
		return fmt.Errorf("%w: unknown activity level %q", ErrValidation, in.ActivityLevel)
	}
	if in.Goal != "" && !validGoals[in.Goal] {
		return fmt.Errorf("%w: unknown goal %q", ErrValidation, in.Goal)
	}
	return nil
}

// UpdateProfile applies partial profile changes, then recomputes and saves
// every derived target in the same write.
func (s *UserService) UpdateProfile(userID uint, in ProfileInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Age > 0 {
		user.Age = in.Age
	}
	if in.HeightCm > 0 {
		user.HeightCm = in.HeightCm
	}
	if in.WeightKg > 0 {
		user.WeightKg = in.WeightKg
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.ActivityLevel != "" {
		user.ActivityLevel = in.ActivityLevel
	}
	if in.Goal != "" {
		user.Goal = in.Goal
	}
	if in.TargetWeight > 0 {
		user.TargetWeight = in.TargetWeight
	}

	applyDerivedTargets(user)
	user.ProfileCompleted = profileComplete(user)

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type GoalsInput struct {
	Goal         string  `json:"goal" binding:"required"`
	TargetWeight float64 `json:"target_weight"`
}

// UpdateGoals changes the goal (a calculator input), so the full pipeline
// runs again.
func (s *UserService) UpdateGoals(userID uint, in GoalsInput) (*models.User, error) {
	if !validGoals[in.Goal] {
		return nil, fmt.Errorf("%w: unknown goal %q", ErrValidation, in.Goal)
	}
	if in.TargetWeight < 0 {
		return nil, fmt.Errorf("%w: target weight must not be negative", ErrValidation)
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	user.Goal = in.Goal
	if in.TargetWeight > 0 {
		user.TargetWeight = in.TargetWeight
	}
	applyDerivedTargets(user)

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type PreferencesInput struct {
	DietType      string `json:"diet_type"`
	Budget        string `json:"budget"`
	Allergies     string `json:"allergies"`
	DislikedFoods string `json:"disliked_foods"`
}

// UpdatePreferences touches no calculator input, so targets stay as-is.
func (s *UserService) UpdatePreferences(userID uint, in PreferencesInput) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.DietType != "" {
		user.DietType = in.DietType
	}
	if in.Budget != "" {
		user.Budget = in.Budget
	}
	if in.Allergies != "" {
		user.Allergies = in.Allergies
	}
	if in.DislikedFoods != "" {
		user.DislikedFoods = in.DislikedFoods
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Recalculate re-runs the derivation pipeline on the stored profile.
func (s *UserService) Recalculate(userID uint) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	applyDerivedTargets(user)
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
