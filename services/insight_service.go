package services

import (
	"fmt"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
)

type Insight struct {
	Type    string `json:"type"` // success | warning | error
	Title   string `json:"title"`
	Message string `json:"message"`
}

type DailyReport struct {
	Date     string    `json:"date"`
	Score    int       `json:"score"`
	Status   string    `json:"status"`
	Color    string    `json:"color"`
	Insights []Insight `json:"insights"`
}

// metricRule is one scored check: extract actual and goal, then walk the
// outcome bands in order and take the first match. Keeping the checks as
// records means adding a metric is a table entry, not another branch tree.
type metricRule struct {
	Metric string
	Skip   func(d *models.DailySummary) bool
	Actual func(d *models.DailySummary) float64
	Goal   func(u *models.User, d *models.DailySummary) float64
	Bands  []ruleBand
}

// ruleBand pairs a predicate with its insight and penalty. Silent bands
// score nothing and emit nothing.
type ruleBand struct {
	Matches func(actual, goal float64) bool
	Type    string
	Title   string
	Message func(actual, goal float64) string
	Penalty int
	Silent  bool
}

func goalOr(fallback int, candidates ...int) float64 {
	for _, c := range candidates {
		if c > 0 {
			return float64(c)
		}
	}
	return float64(fallback)
}

var insightRules = []metricRule{
	{
		Metric: "calories",
		Actual: func(d *models.DailySummary) float64 { return d.CaloriesConsumed },
		Goal: func(u *models.User, d *models.DailySummary) float64 {
			return goalOr(2000, u.DailyCalorieTarget, d.CalorieGoal)
		},
		Bands: []ruleBand{
			{
				Matches: func(a, g float64) bool { return a >= g-200 && a <= g+200 },
				Type:    "success", Title: "Calorie Goal Hit",
				Message: func(a, g float64) string {
					return fmt.Sprintf("You consumed %.0f of your %.0f kcal target — right on track.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return a > g+200 },
				Type:    "warning", Title: "Calorie Surplus", Penalty: 10,
				Message: func(a, g float64) string {
					return fmt.Sprintf("You are %.0f kcal over your %.0f kcal target.", a-g, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return a < g-200 },
				Type:    "warning", Title: "Calorie Deficit", Penalty: 5,
				Message: func(a, g float64) string {
					return fmt.Sprintf("You are %.0f kcal under your %.0f kcal target — eat enough to fuel your day.", g-a, g)
				},
			},
		},
	},
	{
		Metric: "protein",
		Actual: func(d *models.DailySummary) float64 { return d.ProteinConsumed },
		Goal: func(u *models.User, d *models.DailySummary) float64 {
			return goalOr(0, u.DailyProteinTarget)
		},
		Bands: []ruleBand{
			{
				Matches: func(a, g float64) bool { return a >= g },
				Type:    "success", Title: "Protein Goal Met",
				Message: func(a, g float64) string {
					return fmt.Sprintf("You hit %.0fg of protein against a %.0fg target.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return a < 0.7*g },
				Type:    "error", Title: "Low Protein", Penalty: 10,
				Message: func(a, g float64) string {
					return fmt.Sprintf("Only %.0fg of %.0fg protein — add a protein-rich meal.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return true },
				Silent:  true,
			},
		},
	},
	{
		Metric: "water",
		Actual: func(d *models.DailySummary) float64 { return float64(d.WaterIntake) },
		Goal: func(u *models.User, d *models.DailySummary) float64 {
			return goalOr(2000, u.DailyWaterGoal, d.WaterGoal)
		},
		Bands: []ruleBand{
			{
				Matches: func(a, g float64) bool { return a >= g },
				Type:    "success", Title: "Hydration Goal Met",
				Message: func(a, g float64) string {
					return fmt.Sprintf("You drank %.0f ml, meeting your %.0f ml goal.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return a < 0.5*g },
				Type:    "error", Title: "Dehydration Risk", Penalty: 15,
				Message: func(a, g float64) string {
					return fmt.Sprintf("Only %.0f ml of %.0f ml — drink water regularly through the day.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return true },
				Type:    "warning", Title: "Below Water Goal", Penalty: 5,
				Message: func(a, g float64) string {
					return fmt.Sprintf("%.0f ml of %.0f ml — keep sipping.", a, g)
				},
			},
		},
	},
	{
		Metric: "steps",
		Actual: func(d *models.DailySummary) float64 { return float64(d.Steps) },
		Goal: func(u *models.User, d *models.DailySummary) float64 {
			return goalOr(10000, u.DailyStepGoal, d.StepGoal)
		},
		Bands: []ruleBand{
			{
				Matches: func(a, g float64) bool { return a >= g },
				Type:    "success", Title: "Step Goal Crushed",
				Message: func(a, g float64) string {
					return fmt.Sprintf("%.0f steps — goal of %.0f reached.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return a < 0.5*g },
				Type:    "warning", Title: "Low Activity", Penalty: 10,
				Message: func(a, g float64) string {
					return fmt.Sprintf("Only %.0f of %.0f steps — a short walk would help.", a, g)
				},
			},
			{
				Matches: func(a, g float64) bool { return true },
				Silent:  true,
			},
		},
	},
	{
		Metric: "sleep",
		Skip:   func(d *models.DailySummary) bool { return d.SleepHours <= 0 },
		Actual: func(d *models.DailySummary) float64 { return d.SleepHours },
		Goal:   func(u *models.User, d *models.DailySummary) float64 { return 7 },
		Bands: []ruleBand{
			{
				Matches: func(a, g float64) bool { return a >= g },
				Type:    "success", Title: "Well Rested",
				Message: func(a, g float64) string {
					return fmt.Sprintf("%.1f hours of sleep — good recovery.", a)
				},
			},
			{
				Matches: func(a, g float64) bool { return a < g },
				Type:    "warning", Title: "Sleep Deficit", Penalty: 10,
				Message: func(a, g float64) string {
					return fmt.Sprintf("Only %.1f hours of sleep — aim for at least 7.", a)
				},
			},
		},
	},
}

// GenerateDailyReport scores one day against the user's targets. Start at
// 100, subtract each matched band's penalty, clamp at 0.
func GenerateDailyReport(user *models.User, summary *models.DailySummary) *DailyReport {
	report := &DailyReport{Date: summary.Date, Score: 100}

	for _, rule := range insightRules {
		if rule.Skip != nil && rule.Skip(summary) {
			continue
		}
		actual := rule.Actual(summary)
		goal := rule.Goal(user, summary)
		for _, band := range rule.Bands {
			if !band.Matches(actual, goal) {
				continue
			}
			report.Score -= band.Penalty
			if !band.Silent {
				report.Insights = append(report.Insights, Insight{
					Type:    band.Type,
					Title:   band.Title,
					Message: band.Message(actual, goal),
				})
			}
			break
		}
	}

	if report.Score < 0 {
		report.Score = 0
	}
	switch {
	case report.Score < 50:
		report.Status, report.Color = "Needs Improvement", "red"
	case report.Score < 80:
		report.Status, report.Color = "Good", "yellow"
	default:
		report.Status, report.Color = "Excellent", "green"
	}
	return report
}

type InsightService struct {
	users     *UserService
	summaries *SummaryService
}

func NewInsightService(users *UserService, summaries *SummaryService) *InsightService {
	return &InsightService{users: users, summaries: summaries}
}

func (s *InsightService) DailyReport(userID uint, date string) (*DailyReport, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summaries.GetOrCreate(userID, date)
	if err != nil {
		return nil, err
	}
	return GenerateDailyReport(user, summary), nil
}
