package utils

import (
	"math"
	"testing"
)

func TestCalculateBMI(t *testing.T) {
	cases := []struct {
		name     string
		weight   float64
		height   float64
		expected float64
	}{
		{"typical adult", 70, 175, 22.86},
		{"zero weight", 0, 175, 0},
		{"zero height", 70, 0, 0},
		{"negative weight", -5, 175, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateBMI(tc.weight, tc.height); got != tc.expected {
				t.Errorf("CalculateBMI(%v, %v) = %v, want %v", tc.weight, tc.height, got, tc.expected)
			}
		})
	}
}

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 = 1643.75; +5 male, -161 otherwise.
	if got := CalculateBMR(70, 175, 30, "male"); got != 1649 {
		t.Errorf("male BMR = %d, want 1649", got)
	}
	if got := CalculateBMR(70, 175, 30, "female"); got != 1483 {
		t.Errorf("female BMR = %d, want 1483", got)
	}
	// Any non-"male" gender takes the female constant.
	if got := CalculateBMR(70, 175, 30, "other"); got != 1483 {
		t.Errorf("other BMR = %d, want 1483", got)
	}
	if got := CalculateBMR(0, 175, 30, "male"); got != 0 {
		t.Errorf("missing weight BMR = %d, want 0", got)
	}
	if got := CalculateBMR(70, 175, 0, "male"); got != 0 {
		t.Errorf("missing age BMR = %d, want 0", got)
	}
}

func TestCalculateTDEE(t *testing.T) {
	cases := []struct {
		level    string
		expected int
	}{
		{ActivitySedentary, 1800},
		{ActivityLight, 2063},
		{ActivityModerate, 2325},
		{ActivityActive, 2588},
		{ActivityExtreme, 2850},
		{"unknown", 1800}, // falls back to sedentary
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			if got := CalculateTDEE(1500, tc.level); got != tc.expected {
				t.Errorf("CalculateTDEE(1500, %q) = %d, want %d", tc.level, got, tc.expected)
			}
		})
	}
	if got := CalculateTDEE(0, ActivityModerate); got != 0 {
		t.Errorf("zero BMR TDEE = %d, want 0", got)
	}
}

func TestCalculateIdealWeight(t *testing.T) {
	// 175cm = 68.9in → male: 50 + 2.3*8.9 = 70.5
	if got := CalculateIdealWeight(175, "male"); got != 70.5 {
		t.Errorf("male ideal weight = %v, want 70.5", got)
	}
	if got := CalculateIdealWeight(175, "female"); got != 66.0 {
		t.Errorf("female ideal weight = %v, want 66.0", got)
	}
	// At or under 60 inches the base is returned directly.
	if got := CalculateIdealWeight(150, "male"); got != 50.0 {
		t.Errorf("short male ideal weight = %v, want 50.0", got)
	}
	if got := CalculateIdealWeight(150, "other"); got != 45.5 {
		t.Errorf("short other ideal weight = %v, want 45.5", got)
	}
	if got := CalculateIdealWeight(0, "male"); got != 0 {
		t.Errorf("missing height ideal weight = %v, want 0", got)
	}
}

func TestCalculateDailyCalorieTarget(t *testing.T) {
	cases := []struct {
		goal     string
		tdee     int
		expected int
	}{
		{GoalWeightLoss, 2500, 2000},
		{GoalWeightLossAggressive, 2500, 1750},
		{GoalMaintenance, 2500, 2500},
		{GoalWeightGain, 2500, 2800},
		{GoalMuscleBuilding, 2500, 3000},
		{"unknown", 2500, 2500},
		// The 1200 kcal floor.
		{GoalWeightLossAggressive, 1300, 1200},
		{GoalWeightLoss, 1400, 1200},
	}
	for _, tc := range cases {
		t.Run(tc.goal, func(t *testing.T) {
			if got := CalculateDailyCalorieTarget(tc.tdee, tc.goal); got != tc.expected {
				t.Errorf("target(%d, %q) = %d, want %d", tc.tdee, tc.goal, got, tc.expected)
			}
		})
	}
}

// TestCalorieTargetFloorHolds sweeps plausible profiles and asserts the
// floor invariant: any valid profile yields a target of at least 1200 kcal.
func TestCalorieTargetFloorHolds(t *testing.T) {
	goals := []string{GoalWeightLoss, GoalWeightLossAggressive, GoalMaintenance, GoalWeightGain, GoalMuscleBuilding}
	levels := []string{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityExtreme}
	for _, goal := range goals {
		for _, level := range levels {
			for _, weight := range []float64{40, 60, 90, 150} {
				for _, age := range []int{18, 45, 80} {
					targets := CalculateTargets(age, 160, weight, "female", level, goal)
					if targets.DailyCalorieTarget < MinDailyCalories {
						t.Fatalf("target %d below floor for goal=%s level=%s weight=%v age=%d",
							targets.DailyCalorieTarget, goal, level, weight, age)
					}
				}
			}
		}
	}
}

// TestMacroTargetsRoundTrip converts the gram targets back to kcal and
// checks they approximate the calorie budget. Each macro rounds by at most
// half a gram, so the reconstruction can be off by up to 0.5×(4+4+9) kcal.
func TestMacroTargetsRoundTrip(t *testing.T) {
	goals := []string{GoalWeightLoss, GoalWeightLossAggressive, GoalMaintenance, GoalWeightGain, GoalMuscleBuilding}
	for _, goal := range goals {
		for _, calories := range []int{1200, 1850, 2000, 2743, 3500} {
			m := CalculateMacroTargets(calories, goal)
			back := float64(m.ProteinG*4 + m.CarbsG*4 + m.FatsG*9)
			if math.Abs(back-float64(calories)) > 8.5 {
				t.Errorf("goal=%s calories=%d: macros round-trip to %.0f kcal", goal, calories, back)
			}
		}
	}
}

func TestCalculateMacroTargetsRatios(t *testing.T) {
	// muscle_building 2000 kcal: P 30% / C 45% / F 25%.
	m := CalculateMacroTargets(2000, GoalMuscleBuilding)
	if m.ProteinG != 150 || m.CarbsG != 225 || m.FatsG != 56 {
		t.Errorf("muscle_building macros = %+v", m)
	}
	// weight_loss 2000 kcal: P 35% / C 35% / F 30%.
	m = CalculateMacroTargets(2000, GoalWeightLoss)
	if m.ProteinG != 175 || m.CarbsG != 175 || m.FatsG != 67 {
		t.Errorf("weight_loss macros = %+v", m)
	}
	// default bucket 2000 kcal: P 25% / C 45% / F 30%.
	m = CalculateMacroTargets(2000, GoalMaintenance)
	if m.ProteinG != 125 || m.CarbsG != 225 || m.FatsG != 67 {
		t.Errorf("maintenance macros = %+v", m)
	}
}

func TestCalculateWaterGoal(t *testing.T) {
	if got := CalculateWaterGoal(70, ActivityModerate); got != 70*33+500 {
		t.Errorf("water goal = %d", got)
	}
	if got := CalculateWaterGoal(70, ActivitySedentary); got != 70*33 {
		t.Errorf("sedentary water goal = %d", got)
	}
	if got := CalculateWaterGoal(0, ActivityActive); got != 2000 {
		t.Errorf("missing weight water goal = %d, want 2000", got)
	}
}

func TestCalculateStepGoal(t *testing.T) {
	cases := map[string]int{
		ActivitySedentary: 5000,
		ActivityLight:     7500,
		ActivityModerate:  10000,
		ActivityActive:    12500,
		ActivityExtreme:   15000,
		"unknown":         10000,
	}
	for level, want := range cases {
		if got := CalculateStepGoal(level); got != want {
			t.Errorf("step goal for %q = %d, want %d", level, got, want)
		}
	}
}

func TestCalculateTargetsMissingProfile(t *testing.T) {
	targets := CalculateTargets(0, 0, 0, "", "", "")
	if targets.BMI != 0 || targets.BMR != 0 || targets.TDEE != 0 || targets.DailyCalorieTarget != 0 {
		t.Errorf("empty profile should derive zeros, got %+v", targets)
	}
	// Water and steps keep their documented fallbacks.
	if targets.DailyWaterGoal != 2000 {
		t.Errorf("water fallback = %d, want 2000", targets.DailyWaterGoal)
	}
	if targets.DailyStepGoal != 10000 {
		t.Errorf("step fallback = %d, want 10000", targets.DailyStepGoal)
	}
}
