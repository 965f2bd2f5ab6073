package routes

import (
	"log"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/config"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/controllers"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/middlewares"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	hub := services.NewRealtimeHub()
	summarySvc := services.NewSummaryService(db, hub, config.UTCOffsetMin)
	mealSvc := services.NewMealService(db, summarySvc)
	workoutSvc := services.NewWorkoutService(db, summarySvc)
	userSvc := services.NewUserService(db)
	authSvc := services.NewAuthService(db)
	syncSvc := services.NewSyncService(db, services.NewGoogleFitService(), summarySvc, config.UTCOffsetMin)
	insightSvc := services.NewInsightService(userSvc, summarySvc)
	gamifySvc := services.NewGamificationService(summarySvc, config.UTCOffsetMin)
	exerciseSvc := services.NewExerciseService(db)
	if err := exerciseSvc.Seed(services.DefaultExercises); err != nil {
		log.Printf("exercise catalog seed failed: %v", err)
	}

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(userSvc)
	mealCtl := controllers.NewMealController(mealSvc)
	workoutCtl := controllers.NewWorkoutController(workoutSvc)
	trackingCtl := controllers.NewTrackingController(summarySvc)
	fitnessCtl := controllers.NewFitnessController(syncSvc)
	insightCtl := controllers.NewInsightController(insightSvc)
	gamifyCtl := controllers.NewGamificationController(gamifySvc)
	exerciseCtl := controllers.NewExerciseController(exerciseSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", userCtl.GetProfile)
		user.PUT("/profile", userCtl.UpdateProfile)
		user.PUT("/goals", userCtl.UpdateGoals)
		user.PUT("/preferences", userCtl.UpdatePreferences)
		user.POST("/recalculate", userCtl.Recalculate)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", mealCtl.Create)
		meals.GET("", mealCtl.List)
		meals.GET("/:id", mealCtl.Get)
		meals.PUT("/:id", mealCtl.Update)
		meals.DELETE("/:id", mealCtl.Delete)
	}

	workouts := r.Group("/workouts")
	workouts.Use(middlewares.AuthMiddleware())
	{
		workouts.POST("", workoutCtl.Create)
		workouts.GET("", workoutCtl.List)
		workouts.GET("/:id", workoutCtl.Get)
		workouts.PUT("/:id", workoutCtl.Update)
		workouts.DELETE("/:id", workoutCtl.Delete)
	}

	tracking := r.Group("/tracking")
	tracking.Use(middlewares.AuthMiddleware())
	{
		tracking.GET("/summary", trackingCtl.GetSummary)
		tracking.GET("/summary/range", trackingCtl.GetSummaryRange)
		tracking.POST("/water", trackingCtl.LogWater)
		tracking.POST("/steps", trackingCtl.LogSteps)
		tracking.POST("/sleep", trackingCtl.LogSleep)
		tracking.POST("/weight", trackingCtl.LogWeight)
		tracking.POST("/repair", trackingCtl.Repair)
	}

	fitness := r.Group("/fitness")
	fitness.Use(middlewares.AuthMiddleware())
	{
		fitness.POST("/connect", fitnessCtl.Connect)
		fitness.POST("/sync", fitnessCtl.SyncSteps)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/insights/daily", insightCtl.Daily)
		protected.GET("/gamification/status", gamifyCtl.Status)
		protected.GET("/exercises", exerciseCtl.List)
		protected.GET("/ws", realtimeCtl.Connect)
	}

	return r
}
