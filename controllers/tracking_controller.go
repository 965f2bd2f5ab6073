package controllers

import (
	"net/http"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/config"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"github.com/gin-gonic/gin"
)

// TrackingController exposes the daily-summary surface: reads, the direct
// water/steps/sleep/weight writes, and the repair endpoint. Meal and workout
// writes flow through their own controllers.
type TrackingController struct {
	Summaries *services.SummaryService
}

func NewTrackingController(summaries *services.SummaryService) *TrackingController {
	return &TrackingController{Summaries: summaries}
}

// dateOrToday resolves the optional ?date= query to today's key in the
// configured zone.
func dateOrToday(c *gin.Context) string {
	if d := c.Query("date"); d != "" {
		return d
	}
	return utils.TodayInZone(config.UTCOffsetMin, time.Now())
}

func (tc *TrackingController) GetSummary(c *gin.Context) {
	summary, err := tc.Summaries.GetOrCreate(c.GetUint("userID"), dateOrToday(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (tc *TrackingController) GetSummaryRange(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	summaries, err := tc.Summaries.Range(c.GetUint("userID"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

type WaterInput struct {
	AmountMl int    `json:"amount_ml" binding:"required"`
	Date     string `json:"date"`
}

func (tc *TrackingController) LogWater(c *gin.Context) {
	var input WaterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Date == "" {
		input.Date = utils.TodayInZone(config.UTCOffsetMin, time.Now())
	}

	summary, err := tc.Summaries.ApplyWaterDelta(c.GetUint("userID"), input.Date, input.AmountMl)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type StepsInput struct {
	Steps int    `json:"steps"`
	Date  string `json:"date"`
}

func (tc *TrackingController) LogSteps(c *gin.Context) {
	var input StepsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Date == "" {
		input.Date = utils.TodayInZone(config.UTCOffsetMin, time.Now())
	}

	summary, err := tc.Summaries.SetSteps(c.GetUint("userID"), input.Date, input.Steps, models.StepsManual)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type SleepRequest struct {
	services.SleepInput
	Date string `json:"date"`
}

func (tc *TrackingController) LogSleep(c *gin.Context) {
	var input SleepRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Date == "" {
		input.Date = utils.TodayInZone(config.UTCOffsetMin, time.Now())
	}

	summary, err := tc.Summaries.SetSleep(c.GetUint("userID"), input.Date, input.SleepInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type WeightInput struct {
	Weight float64 `json:"weight" binding:"required"`
	Date   string  `json:"date"`
}

func (tc *TrackingController) LogWeight(c *gin.Context) {
	var input WeightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Date == "" {
		input.Date = utils.TodayInZone(config.UTCOffsetMin, time.Now())
	}

	summary, err := tc.Summaries.SetWeight(c.GetUint("userID"), input.Date, input.Weight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Repair recomputes a day's meal/workout counters from the source rows.
func (tc *TrackingController) Repair(c *gin.Context) {
	summary, err := tc.Summaries.RecomputeDay(c.GetUint("userID"), dateOrToday(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
