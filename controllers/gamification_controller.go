package controllers

import (
	"net/http"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	Gamification *services.GamificationService
}

func NewGamificationController(g *services.GamificationService) *GamificationController {
	return &GamificationController{Gamification: g}
}

func (gc *GamificationController) Status(c *gin.Context) {
	status, err := gc.Gamification.Status(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
