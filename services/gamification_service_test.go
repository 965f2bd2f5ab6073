package services

import (
	"testing"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summariesFor(dates ...string) []models.DailySummary {
	out := make([]models.DailySummary, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.DailySummary{Date: d})
	}
	return out
}

// instantInZone builds an absolute time from a local wall clock in the test
// offset zone.
func instantInZone(date string, hour int) time.Time {
	day, _ := time.Parse(utils.DateKeyLayout, date)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, utils.ZoneForOffset(testOffsetMin))
}

func TestComputeGamificationStreaks(t *testing.T) {
	// Three consecutive days, a gap, then one more. The run of three is the
	// longest, and the final entry is too old for a live streak.
	status := ComputeGamification(
		summariesFor("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"),
		instantInZone("2024-01-07", 12), testOffsetMin)

	assert.Equal(t, 3, status.MaxStreak)
	assert.Equal(t, 0, status.CurrentStreak)
	assert.Equal(t, 40, status.Points)
}

func TestComputeGamificationStreakBreaksAfterADay(t *testing.T) {
	summaries := summariesFor("2024-01-04", "2024-01-05")

	// Noon the day after the last entry: more than 24h since that day began.
	status := ComputeGamification(summaries, instantInZone("2024-01-06", 12), testOffsetMin)
	assert.Equal(t, 0, status.CurrentStreak)
	assert.Equal(t, 2, status.MaxStreak)

	// Same evening the streak is still live.
	status = ComputeGamification(summaries, instantInZone("2024-01-05", 20), testOffsetMin)
	assert.Equal(t, 2, status.CurrentStreak)
}

func TestComputeGamificationEntryTodayKeepsStreak(t *testing.T) {
	status := ComputeGamification(
		summariesFor("2024-01-04", "2024-01-05", "2024-01-06"),
		instantInZone("2024-01-06", 12), testOffsetMin)

	assert.Equal(t, 3, status.CurrentStreak)
	assert.Equal(t, 3, status.MaxStreak)
}

func TestComputeGamificationEmpty(t *testing.T) {
	status := ComputeGamification(nil, instantInZone("2024-01-06", 12), testOffsetMin)
	assert.Zero(t, status.CurrentStreak)
	assert.Zero(t, status.MaxStreak)
	assert.Zero(t, status.Points)
	assert.Empty(t, status.Badges)
}

func TestComputeGamificationBadges(t *testing.T) {
	// Seven consecutive days earns the week streak badge on top of starter.
	var summaries []models.DailySummary
	date := "2024-01-01"
	for i := 0; i < 7; i++ {
		summaries = append(summaries, models.DailySummary{Date: date, Steps: 20000})
		date, _ = utils.AddDaysToKey(date, 1)
	}

	status := ComputeGamification(summaries, instantInZone("2024-01-07", 18), testOffsetMin)
	assert.Equal(t, 7, status.CurrentStreak)
	assert.Contains(t, status.Badges, "starter")
	assert.Contains(t, status.Badges, "week_streak")
	assert.NotContains(t, status.Badges, "month_streak")

	// 140k total steps clears the stepper threshold.
	assert.Equal(t, 140000, status.TotalSteps)
	assert.Contains(t, status.Badges, "stepper")
}

func TestComputeGamificationMonthStreakBadge(t *testing.T) {
	var summaries []models.DailySummary
	date := "2024-01-01"
	for i := 0; i < 30; i++ {
		summaries = append(summaries, models.DailySummary{Date: date})
		date, _ = utils.AddDaysToKey(date, 1)
	}

	status := ComputeGamification(summaries, instantInZone("2024-01-30", 9), testOffsetMin)
	assert.Equal(t, 30, status.MaxStreak)
	assert.Contains(t, status.Badges, "month_streak")
	assert.NotContains(t, status.Badges, "stepper")
	assert.Equal(t, 300, status.Points)
}

func TestGamificationServiceStatus(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	sums := newTestSummaryService(db)
	svc := NewGamificationService(sums, testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		_, err := sums.SetSteps(user.ID, d, 5000, models.StepsManual)
		require.NoError(t, err)
	}

	status, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.CurrentStreak)
	assert.Equal(t, 15000, status.TotalSteps)
	assert.Equal(t, 30, status.Points)
}
