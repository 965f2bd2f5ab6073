package services

import (
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"
)

// Badge thresholds. Closed set: extend here, not at call sites.
const (
	badgeWeekStreakDays  = 7
	badgeMonthStreakDays = 30
	stepperBadgeSteps    = 100000
	pointsPerDay         = 10
)

type GamificationStatus struct {
	CurrentStreak int      `json:"current_streak"`
	MaxStreak     int      `json:"max_streak"`
	Points        int      `json:"points"`
	TotalSteps    int      `json:"total_steps"`
	Badges        []string `json:"badges"`
}

// ComputeGamification walks date-ascending summaries: runs of exactly-one-day
// gaps extend the streak, anything else starts a new run. The final run
// counts as the current streak only while `now` is within a day of the last
// entry's start; an entry from the day before yesterday, or earlier, breaks
// it.
func ComputeGamification(summaries []models.DailySummary, now time.Time, offsetMin int) *GamificationStatus {
	status := &GamificationStatus{Badges: []string{}}
	if len(summaries) == 0 {
		return status
	}

	run := 1
	maxStreak := 1
	totalSteps := summaries[0].Steps
	for i := 1; i < len(summaries); i++ {
		totalSteps += summaries[i].Steps
		if utils.DaysBetweenKeys(summaries[i-1].Date, summaries[i].Date) == 1 {
			run++
		} else {
			run = 1
		}
		if run > maxStreak {
			maxStreak = run
		}
	}

	current := run
	lastStart, _, err := utils.DayBoundsInZone(summaries[len(summaries)-1].Date, offsetMin)
	if err != nil || now.Sub(lastStart).Hours() > 24 {
		current = 0
	}

	status.CurrentStreak = current
	status.MaxStreak = maxStreak
	status.TotalSteps = totalSteps
	status.Points = len(summaries) * pointsPerDay

	status.Badges = append(status.Badges, "starter")
	if maxStreak >= badgeWeekStreakDays {
		status.Badges = append(status.Badges, "week_streak")
	}
	if maxStreak >= badgeMonthStreakDays {
		status.Badges = append(status.Badges, "month_streak")
	}
	if totalSteps > stepperBadgeSteps {
		status.Badges = append(status.Badges, "stepper")
	}
	return status
}

type GamificationService struct {
	summaries *SummaryService
	offsetMin int
	now       func() time.Time
}

func NewGamificationService(summaries *SummaryService, offsetMin int) *GamificationService {
	return &GamificationService{summaries: summaries, offsetMin: offsetMin, now: time.Now}
}

func (s *GamificationService) Status(userID uint) (*GamificationStatus, error) {
	summaries, err := s.summaries.All(userID)
	if err != nil {
		return nil, err
	}
	return ComputeGamification(summaries, s.now(), s.offsetMin), nil
}
