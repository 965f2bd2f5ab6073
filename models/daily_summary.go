package models

import (
	"gorm.io/gorm"
)

// Step provenance values for DailySummary.StepsSource.
const (
	StepsManual = "manual"
	StepsSynced = "synced"
)

// DailySummary is the per-user-per-day aggregate. Date is a YYYY-MM-DD
// string, not a timestamp, so the (user_id, date) key is unambiguous
// regardless of time of day. Exactly one row per pair is enforced by the
// composite unique index.
type DailySummary struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_user_date;not null"`
	Date   string `gorm:"uniqueIndex:idx_user_date;size:10;not null"`

	// Nutrition counters, maintained by meal reconciliation deltas.
	CaloriesConsumed float64
	ProteinConsumed  float64
	CarbsConsumed    float64
	FatsConsumed     float64

	// Activity counters, maintained by workout reconciliation and step sync.
	CaloriesBurned float64
	ActiveMinutes  float64
	Steps          int
	StepsSource    string `gorm:"size:10"`

	WaterIntake int // ml

	SleepHours   float64
	SleepQuality int // 1–5
	SleepStart   string
	SleepEnd     string

	Weight float64 // optional daily snapshot

	// Goal snapshot taken from the user's targets when the row is first
	// created. Deliberately not refreshed if the profile changes later.
	CalorieGoal int
	WaterGoal   int
	StepGoal    int
}
