package controllers

import (
	"net/http"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Insights *services.InsightService
}

func NewInsightController(insights *services.InsightService) *InsightController {
	return &InsightController{Insights: insights}
}

func (ic *InsightController) Daily(c *gin.Context) {
	report, err := ic.Insights.DailyReport(c.GetUint("userID"), dateOrToday(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
