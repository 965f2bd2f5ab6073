package controllers

import (
	"net/http"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Exercises *services.ExerciseService
}

func NewExerciseController(exercises *services.ExerciseService) *ExerciseController {
	return &ExerciseController{Exercises: exercises}
}

func (ec *ExerciseController) List(c *gin.Context) {
	exercises, err := ec.Exercises.List(c.Query("muscle_group"), c.Query("difficulty"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}
