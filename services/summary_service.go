package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryService owns the per-(user, date) DailySummary aggregate. The
// increment operations are single-statement ON CONFLICT upserts so two
// concurrent reconciliations against the same day never lose an update;
// the absolute sets are last-writer-wins.
type SummaryService struct {
	db        *gorm.DB
	hub       *RealtimeHub
	offsetMin int
}

func NewSummaryService(db *gorm.DB, hub *RealtimeHub, offsetMin int) *SummaryService {
	return &SummaryService{db: db, hub: hub, offsetMin: offsetMin}
}

// withTx rebinds the service to a transaction. The hub is dropped: callers
// broadcast after commit, not from inside the transaction.
func (s *SummaryService) withTx(tx *gorm.DB) *SummaryService {
	return &SummaryService{db: tx, offsetMin: s.offsetMin}
}

func (s *SummaryService) dateKey(t time.Time) string {
	return utils.DateKeyInZone(t, s.offsetMin)
}

var summaryConflict = []clause.Column{{Name: "user_id"}, {Name: "date"}}

// clampedAdd increments a counter column in SQL, clamping at zero. The CASE
// form works on both postgres and sqlite.
func clampedAdd(col string, delta float64) clause.Expr {
	return gorm.Expr(
		"CASE WHEN daily_summaries."+col+" + ? < 0 THEN 0 ELSE daily_summaries."+col+" + ? END",
		delta, delta,
	)
}

// newRow builds the insert-side row for an upsert: zero counters, goal
// fields snapshotted from the user's current targets, with hardcoded
// fallbacks when the profile has no targets yet. Existing rows keep the
// goals they were created with.
func (s *SummaryService) newRow(userID uint, date string) (models.DailySummary, error) {
	if _, err := utils.ParseDateKey(date); err != nil {
		return models.DailySummary{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	row := models.DailySummary{
		UserID:      userID,
		Date:        date,
		WaterGoal:   2000,
		StepGoal:    10000,
		CalorieGoal: 2000,
	}

	var user models.User
	err := s.db.First(&user, userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DailySummary{}, err
	}
	if user.DailyWaterGoal > 0 {
		row.WaterGoal = user.DailyWaterGoal
	}
	if user.DailyStepGoal > 0 {
		row.StepGoal = user.DailyStepGoal
	}
	if user.DailyCalorieTarget > 0 {
		row.CalorieGoal = user.DailyCalorieTarget
	}
	return row, nil
}

func (s *SummaryService) reload(userID uint, date string) (*models.DailySummary, error) {
	var out models.DailySummary
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// notify re-reads the row and pushes it to the user's websocket clients.
func (s *SummaryService) notify(userID uint, date string) {
	if s.hub == nil {
		return
	}
	if sum, err := s.reload(userID, date); err == nil {
		s.hub.BroadcastSummary(userID, sum)
	}
}

// GetOrCreate returns the summary for (user, date), creating it lazily on
// first touch. A second call with no intervening writes is a pure read.
func (s *SummaryService) GetOrCreate(userID uint, date string) (*models.DailySummary, error) {
	row, err := s.newRow(userID, date)
	if err != nil {
		return nil, err
	}

	if sum, err := s.reload(userID, date); err == nil {
		return sum, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   summaryConflict,
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return nil, err
	}
	// Re-read in case a concurrent create won the conflict.
	return s.reload(userID, date)
}

// ApplyWaterDelta adjusts water intake by a signed amount of milliliters.
// The stored value clamps at zero, in SQL, so concurrent decrements cannot
// drive it negative.
func (s *SummaryService) ApplyWaterDelta(userID uint, date string, deltaML int) (*models.DailySummary, error) {
	row, err := s.newRow(userID, date)
	if err != nil {
		return nil, err
	}
	if deltaML > 0 {
		row.WaterIntake = deltaML
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns: summaryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"water_intake": clampedAdd("water_intake", float64(deltaML)),
			"updated_at":   time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	sum, err := s.reload(userID, date)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastSummary(userID, sum)
	}
	return sum, nil
}

// ApplyNutritionDelta increments the consumed counters by signed amounts.
// Used only by meal reconciliation; direct client writes go through the
// absolute-set operations, never here, so no field is driven both ways.
func (s *SummaryService) ApplyNutritionDelta(userID uint, date string, calories, protein, carbs, fats float64) error {
	row, err := s.newRow(userID, date)
	if err != nil {
		return err
	}
	row.CaloriesConsumed = nonNegative(calories)
	row.ProteinConsumed = nonNegative(protein)
	row.CarbsConsumed = nonNegative(carbs)
	row.FatsConsumed = nonNegative(fats)

	return s.db.Clauses(clause.OnConflict{
		Columns: summaryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"calories_consumed": clampedAdd("calories_consumed", calories),
			"protein_consumed":  clampedAdd("protein_consumed", protein),
			"carbs_consumed":    clampedAdd("carbs_consumed", carbs),
			"fats_consumed":     clampedAdd("fats_consumed", fats),
			"updated_at":        time.Now(),
		}),
	}).Create(&row).Error
}

// ApplyWorkoutDelta increments burned calories and active minutes. Used only
// by workout reconciliation.
func (s *SummaryService) ApplyWorkoutDelta(userID uint, date string, burned, minutes float64) error {
	row, err := s.newRow(userID, date)
	if err != nil {
		return err
	}
	row.CaloriesBurned = nonNegative(burned)
	row.ActiveMinutes = nonNegative(minutes)

	return s.db.Clauses(clause.OnConflict{
		Columns: summaryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"calories_burned": clampedAdd("calories_burned", burned),
			"active_minutes":  clampedAdd("active_minutes", minutes),
			"updated_at":      time.Now(),
		}),
	}).Create(&row).Error
}

// SetSteps overwrites the step count for a date, tagging its source so a
// manual entry and a provider sync are distinguishable afterwards.
func (s *SummaryService) SetSteps(userID uint, date string, steps int, source string) (*models.DailySummary, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: steps must not be negative", ErrValidation)
	}
	row, err := s.newRow(userID, date)
	if err != nil {
		return nil, err
	}
	row.Steps = steps
	row.StepsSource = source

	err = s.db.Clauses(clause.OnConflict{
		Columns: summaryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"steps":        steps,
			"steps_source": source,
			"updated_at":   time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	sum, err := s.reload(userID, date)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastSummary(userID, sum)
	}
	return sum, nil
}

type SleepInput struct {
	Hours   float64 `json:"hours"`
	Quality int     `json:"quality"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
}

// SetSleep overwrites the night's sleep record on the summary.
func (s *SummaryService) SetSleep(userID uint, date string, in SleepInput) (*models.DailySummary, error) {
	if in.Hours < 0 {
		return nil, fmt.Errorf("%w: sleep hours must not be negative", ErrValidation)
	}
	if in.Quality < 0 || in.Quality > 5 {
		return nil, fmt.Errorf("%w: sleep quality must be between 1 and 5", ErrValidation)
	}
	row, err := s.newRow(userID, date)
	if err != nil {
		return nil, err
	}
	row.SleepHours = in.Hours
	row.SleepQuality = in.Quality
	row.SleepStart = in.Start
	row.SleepEnd = in.End

	err = s.db.Clauses(clause.OnConflict{
		Columns: summaryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"sleep_hours":   in.Hours,
			"sleep_quality": in.Quality,
			"sleep_start":   in.Start,
			"sleep_end":     in.End,
			"updated_at":    time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	sum, err := s.reload(userID, date)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastSummary(userID, sum)
	}
	return sum, nil
}

// SetWeight records a daily weight snapshot and mirrors it onto the user's
// profile as the current weight, re-running the derived-target pipeline.
func (s *SummaryService) SetWeight(userID uint, date string, weight float64) (*models.DailySummary, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	row, err := s.newRow(userID, date)
	if err != nil {
		return nil, err
	}
	row.Weight = weight

	err = s.db.Clauses(clause.OnConflict{
		Columns: summaryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"weight":     weight,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err == nil {
		user.WeightKg = weight
		applyDerivedTargets(&user)
		if err := s.db.Save(&user).Error; err != nil {
			return nil, err
		}
	}

	sum, err := s.reload(userID, date)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastSummary(userID, sum)
	}
	return sum, nil
}

// Range returns summaries between two date keys inclusive, ascending.
func (s *SummaryService) Range(userID uint, from, to string) ([]models.DailySummary, error) {
	if _, err := utils.ParseDateKey(from); err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := utils.ParseDateKey(to); err != nil {
		return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrValidation)
	}
	var out []models.DailySummary
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

// All returns every summary for the user in date order, the input the
// gamification engine walks.
func (s *SummaryService) All(userID uint) ([]models.DailySummary, error) {
	var out []models.DailySummary
	err := s.db.
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

// RecomputeDay rebuilds a day's meal- and workout-driven counters from the
// underlying rows, repairing any drift the incremental deltas accumulated.
// Water, sleep, weight, steps and the goal snapshot are left alone.
func (s *SummaryService) RecomputeDay(userID uint, date string) (*models.DailySummary, error) {
	start, end, err := utils.DayBoundsInZone(date, s.offsetMin)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		inner := s.withTx(tx)
		if _, err := inner.GetOrCreate(userID, date); err != nil {
			return err
		}

		var nt struct {
			Calories float64
			Protein  float64
			Carbs    float64
			Fats     float64
		}
		if err := tx.Model(&models.Meal{}).
			Select("COALESCE(SUM(calories),0) AS calories, COALESCE(SUM(protein),0) AS protein, COALESCE(SUM(carbs),0) AS carbs, COALESCE(SUM(fats),0) AS fats").
			Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, start, end).
			Scan(&nt).Error; err != nil {
			return err
		}

		var wt struct {
			Burned  float64
			Minutes float64
		}
		if err := tx.Model(&models.Workout{}).
			Select("COALESCE(SUM(calories_burned),0) AS burned, COALESCE(SUM(duration_min),0) AS minutes").
			Where("user_id = ? AND performed_at >= ? AND performed_at < ?", userID, start, end).
			Scan(&wt).Error; err != nil {
			return err
		}

		return tx.Model(&models.DailySummary{}).
			Where("user_id = ? AND date = ?", userID, date).
			Updates(map[string]interface{}{
				"calories_consumed": nt.Calories,
				"protein_consumed":  nt.Protein,
				"carbs_consumed":    nt.Carbs,
				"fats_consumed":     nt.Fats,
				"calories_burned":   wt.Burned,
				"active_minutes":    wt.Minutes,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	sum, err := s.reload(userID, date)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastSummary(userID, sum)
	}
	return sum, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
