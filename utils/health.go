package utils

import "math"

// Activity levels and goals are closed enums. The tables below are the single
// source of truth for the multipliers and adjustments keyed by them; adding
// a new level or goal means updating every table here.
const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityExtreme   = "extreme"
)

const (
	GoalWeightLoss           = "weight_loss"
	GoalWeightLossAggressive = "weight_loss_aggressive"
	GoalMaintenance          = "maintenance"
	GoalWeightGain           = "weight_gain"
	GoalMuscleBuilding       = "muscle_building"
)

var activityMultipliers = map[string]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
	ActivityExtreme:   1.9,
}

var calorieAdjustments = map[string]int{
	GoalWeightLoss:           -500,
	GoalWeightLossAggressive: -750,
	GoalMaintenance:          0,
	GoalWeightGain:           300,
	GoalMuscleBuilding:       500,
}

var waterActivityBonus = map[string]int{
	ActivitySedentary: 0,
	ActivityLight:     250,
	ActivityModerate:  500,
	ActivityActive:    750,
	ActivityExtreme:   1000,
}

var stepGoals = map[string]int{
	ActivitySedentary: 5000,
	ActivityLight:     7500,
	ActivityModerate:  10000,
	ActivityActive:    12500,
	ActivityExtreme:   15000,
}

// MinDailyCalories is the floor applied to every calorie target.
const MinDailyCalories = 1200

// CalculateBMI expects weight in kilograms and height in centimeters.
// Returns 0 if either input is missing or non-positive; callers validate at
// the profile boundary, not here.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	h := heightCm / 100.0
	return math.Round(weightKg/(h*h)*100) / 100
}

// CalculateBMR uses Mifflin-St Jeor. Any gender other than "male" takes the
// female constant. Returns 0 for missing inputs.
func CalculateBMR(weightKg, heightCm float64, age int, gender string) int {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// CalculateTDEE scales BMR by the activity multiplier; unknown levels fall
// back to sedentary.
func CalculateTDEE(bmr int, activityLevel string) int {
	if bmr <= 0 {
		return 0
	}
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers[ActivitySedentary]
	}
	return int(math.Round(float64(bmr) * mult))
}

// CalculateIdealWeight uses the Devine formula over height in inches.
// At or under 60 inches the base weight is returned directly.
func CalculateIdealWeight(heightCm float64, gender string) float64 {
	if heightCm <= 0 {
		return 0
	}
	base := 45.5
	if gender == "male" {
		base = 50.0
	}
	inches := heightCm / 2.54
	if inches <= 60 {
		return base
	}
	return math.Round((base+2.3*(inches-60))*10) / 10
}

// CalculateDailyCalorieTarget applies the goal adjustment to TDEE, floored at
// MinDailyCalories. Unknown goals get no adjustment.
func CalculateDailyCalorieTarget(tdee int, goal string) int {
	if tdee <= 0 {
		return 0
	}
	target := tdee + calorieAdjustments[goal]
	if target < MinDailyCalories {
		target = MinDailyCalories
	}
	return target
}

type MacroTargets struct {
	ProteinG int
	CarbsG   int
	FatsG    int
}

// CalculateMacroTargets splits a calorie target into gram targets. Protein
// and carbs count 4 kcal/g, fat 9 kcal/g.
func CalculateMacroTargets(calories int, goal string) MacroTargets {
	if calories <= 0 {
		return MacroTargets{}
	}
	var pRatio, cRatio, fRatio float64
	switch goal {
	case GoalMuscleBuilding:
		pRatio, cRatio, fRatio = 0.30, 0.45, 0.25
	case GoalWeightLoss, GoalWeightLossAggressive:
		pRatio, cRatio, fRatio = 0.35, 0.35, 0.30
	default:
		pRatio, cRatio, fRatio = 0.25, 0.45, 0.30
	}
	kcal := float64(calories)
	return MacroTargets{
		ProteinG: int(math.Round(kcal * pRatio / 4)),
		CarbsG:   int(math.Round(kcal * cRatio / 4)),
		FatsG:    int(math.Round(kcal * fRatio / 9)),
	}
}

// CalculateWaterGoal is weight-based (33 ml/kg) plus an activity bonus.
// A missing weight yields the 2000 ml fallback.
func CalculateWaterGoal(weightKg float64, activityLevel string) int {
	if weightKg <= 0 {
		return 2000
	}
	return int(weightKg*33) + waterActivityBonus[activityLevel]
}

// CalculateStepGoal is a direct activity-level lookup, defaulting to 10000.
func CalculateStepGoal(activityLevel string) int {
	if g, ok := stepGoals[activityLevel]; ok {
		return g
	}
	return 10000
}

// DerivedTargets bundles every derived field so callers persist them
// together. A partial recompute (say, TDEE without the calorie target) is a
// defect; this is the only way the pipeline is exposed.
type DerivedTargets struct {
	BMI                float64
	BMR                int
	TDEE               int
	IdealWeight        float64
	DailyCalorieTarget int
	DailyProteinTarget int
	DailyCarbsTarget   int
	DailyFatsTarget    int
	DailyWaterGoal     int
	DailyStepGoal      int
}

// CalculateTargets runs the whole derivation pipeline from profile inputs.
// Never errors: missing inputs produce zeros or the documented fallbacks.
func CalculateTargets(age int, heightCm, weightKg float64, gender, activityLevel, goal string) DerivedTargets {
	bmr := CalculateBMR(weightKg, heightCm, age, gender)
	tdee := CalculateTDEE(bmr, activityLevel)
	calories := CalculateDailyCalorieTarget(tdee, goal)
	macros := CalculateMacroTargets(calories, goal)
	return DerivedTargets{
		BMI:                CalculateBMI(weightKg, heightCm),
		BMR:                bmr,
		TDEE:               tdee,
		IdealWeight:        CalculateIdealWeight(heightCm, gender),
		DailyCalorieTarget: calories,
		DailyProteinTarget: macros.ProteinG,
		DailyCarbsTarget:   macros.CarbsG,
		DailyFatsTarget:    macros.FatsG,
		DailyWaterGoal:     CalculateWaterGoal(weightKg, activityLevel),
		DailyStepGoal:      CalculateStepGoal(activityLevel),
	}
}
