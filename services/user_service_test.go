package services

import (
	"testing"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileRecomputesDerivedTargets(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewUserService(db)

	before := *user
	updated, err := svc.UpdateProfile(user.ID, ProfileInput{WeightKg: 85})
	require.NoError(t, err)

	// A weight change ripples through every derived field together.
	assert.Equal(t, 85.0, updated.WeightKg)
	assert.NotEqual(t, before.BMI, updated.BMI)
	assert.NotEqual(t, before.BMR, updated.BMR)
	assert.NotEqual(t, before.TDEE, updated.TDEE)
	assert.NotEqual(t, before.DailyCalorieTarget, updated.DailyCalorieTarget)
	assert.NotEqual(t, before.DailyWaterGoal, updated.DailyWaterGoal)
	// Untouched inputs stay put.
	assert.Equal(t, before.HeightCm, updated.HeightCm)
	assert.Equal(t, before.Age, updated.Age)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewUserService(db)

	updated, err := svc.UpdateProfile(user.ID, ProfileInput{FullName: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, user.WeightKg, updated.WeightKg)
	assert.True(t, updated.ProfileCompleted)
}

func TestUpdateProfileValidation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewUserService(db)

	cases := []ProfileInput{
		{Age: -1},
		{Gender: "robot"},
		{ActivityLevel: "hyperactive"},
		{Goal: "world domination"},
	}
	for _, in := range cases {
		_, err := svc.UpdateProfile(user.ID, in)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err := svc.UpdateProfile(99999, ProfileInput{Age: 25})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGoalsRerunsPipeline(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewUserService(db)

	before := user.DailyCalorieTarget
	updated, err := svc.UpdateGoals(user.ID, GoalsInput{Goal: utils.GoalWeightLoss, TargetWeight: 65})
	require.NoError(t, err)

	assert.Equal(t, utils.GoalWeightLoss, updated.Goal)
	assert.Equal(t, 65.0, updated.TargetWeight)
	// Weight loss takes 500 kcal off the maintenance budget.
	assert.Equal(t, before-500, updated.DailyCalorieTarget)

	_, err = svc.UpdateGoals(user.ID, GoalsInput{Goal: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePreferencesLeavesTargetsAlone(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewUserService(db)

	updated, err := svc.UpdatePreferences(user.ID, PreferencesInput{
		DietType: "vegetarian", Allergies: "peanuts",
	})
	require.NoError(t, err)

	assert.Equal(t, "vegetarian", updated.DietType)
	assert.Equal(t, "peanuts", updated.Allergies)
	assert.Equal(t, user.DailyCalorieTarget, updated.DailyCalorieTarget)
	assert.Equal(t, user.BMR, updated.BMR)
}

func TestRecalculateRefreshesStaleTargets(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewUserService(db)

	// Make the stored targets stale relative to the profile inputs.
	user.DailyCalorieTarget = 1
	user.BMI = 1
	require.NoError(t, db.Save(user).Error)

	updated, err := svc.Recalculate(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, 1, updated.DailyCalorieTarget)
	assert.NotEqual(t, 1.0, updated.BMI)
}

func TestRegisterWithCompleteProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email: "new@example.com", Password: "secret-password", FullName: "New User",
		Age: 28, HeightCm: 168, WeightKg: 62, Gender: "female",
		ActivityLevel: utils.ActivityLight, Goal: utils.GoalMaintenance,
	})
	require.NoError(t, err)

	assert.True(t, user.ProfileCompleted)
	assert.NotZero(t, user.DailyCalorieTarget)
	assert.NotZero(t, user.BMR)
	assert.NotEqual(t, "secret-password", user.Password)
	assert.NotEmpty(t, user.UserID)
}

func TestRegisterWithoutProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email: "bare@example.com", Password: "secret-password", FullName: "Bare User",
	})
	require.NoError(t, err)
	assert.False(t, user.ProfileCompleted)
	assert.Zero(t, user.DailyCalorieTarget)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(RegisterInput{
		Email: "login@example.com", Password: "secret-password", FullName: "Login User",
	})
	require.NoError(t, err)

	token, user, err := svc.Authenticate("login@example.com", "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "login@example.com", user.Email)

	_, _, err = svc.Authenticate("login@example.com", "wrong-password")
	assert.Error(t, err)
	_, _, err = svc.Authenticate("nobody@example.com", "secret-password")
	assert.Error(t, err)
}
