package controllers

import (
	"net/http"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"

	"github.com/gin-gonic/gin"
)

type FitnessController struct {
	Sync *services.SyncService
}

func NewFitnessController(sync *services.SyncService) *FitnessController {
	return &FitnessController{Sync: sync}
}

func (fc *FitnessController) Connect(c *gin.Context) {
	var input services.ConnectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := fc.Sync.Connect(c.GetUint("userID"), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fitness provider connected"})
}

func (fc *FitnessController) SyncSteps(c *gin.Context) {
	result, err := fc.Sync.Sync(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
