package controllers

import (
	"net/http"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func profileResponse(u *models.User) gin.H {
	return gin.H{
		"user_id":           u.UserID,
		"email":             u.Email,
		"full_name":         u.FullName,
		"age":               u.Age,
		"height_cm":         u.HeightCm,
		"weight_kg":         u.WeightKg,
		"gender":            u.Gender,
		"activity_level":    u.ActivityLevel,
		"goal":              u.Goal,
		"target_weight":     u.TargetWeight,
		"bmi":               u.BMI,
		"bmr":               u.BMR,
		"tdee":              u.TDEE,
		"ideal_weight":      u.IdealWeight,
		"calorie_target":    u.DailyCalorieTarget,
		"protein_target":    u.DailyProteinTarget,
		"carbs_target":      u.DailyCarbsTarget,
		"fats_target":       u.DailyFatsTarget,
		"water_goal":        u.DailyWaterGoal,
		"step_goal":         u.DailyStepGoal,
		"diet_type":         u.DietType,
		"budget":            u.Budget,
		"allergies":         u.Allergies,
		"disliked_foods":    u.DislikedFoods,
		"profile_completed": u.ProfileCompleted,
	}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Users.Get(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(user))
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.Users.UpdateProfile(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(user))
}

func (uc *UserController) UpdateGoals(c *gin.Context) {
	var input services.GoalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.Users.UpdateGoals(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(user))
}

func (uc *UserController) UpdatePreferences(c *gin.Context) {
	var input services.PreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.Users.UpdatePreferences(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(user))
}

func (uc *UserController) Recalculate(c *gin.Context) {
	user, err := uc.Users.Recalculate(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(user))
}
