package routes

import (
	"calorie-tracker/config"
	"calorie-tracker/controllers"
	"calorie-tracker/middlewares"
	"calorie-tracker/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	ai := services.NewOpenAIClient(cfg.OpenAI)
	hub := services.NewRealtimeHub()

	entrySvc := services.NewEntryService(db)
	metricsSvc := services.NewMetricsService(db)

	authCtl := controllers.NewAuthController(services.NewAuthService(db, cfg.JWT))
	foodCtl := controllers.NewFoodController(services.NewFoodService(db))
	entryCtl := controllers.NewEntryController(entrySvc, metricsSvc, hub)
	metricsCtl := controllers.NewMetricsController(metricsSvc)
	waterCtl := controllers.NewWaterController(services.NewWaterService(db), hub)
	favoriteCtl := controllers.NewFavoriteMealController(services.NewFavoriteMealService(db, entrySvc), metricsSvc, hub)
	chatCtl := controllers.NewChatController(services.NewChatService(db, metricsSvc, ai))
	imageCtl := controllers.NewImageRecognitionController(services.NewVisionService(ai))
	recipeCtl := controllers.NewRecipeController(services.NewRecipeService(ai))
	suggestCtl := controllers.NewSuggestionController(services.NewSuggestionService(db, metricsSvc, ai))
	realtimeCtl := controllers.NewRealtimeController(hub)

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware(cfg.JWT.Secret))
	{
		account := protected.Group("/auth")
		{
			account.GET("/me", authCtl.Me)
			account.PUT("/profile", authCtl.UpdateProfile)
			account.PUT("/profile-picture", authCtl.UploadProfilePicture)
			account.POST("/change-password", authCtl.ChangePassword)
			account.GET("/goals", authCtl.GetGoals)
			account.PUT("/goals", authCtl.UpdateGoals)
			account.PUT("/water-goal", authCtl.UpdateWaterGoal)
			account.DELETE("/account", authCtl.DeleteAccount)
		}

		foods := protected.Group("/foods")
		{
			foods.GET("", foodCtl.List)
			foods.POST("", foodCtl.Create)
			foods.GET("/:id", foodCtl.Get)
			foods.PUT("/:id", foodCtl.Update)
			foods.DELETE("/:id", foodCtl.Delete)
		}

		entries := protected.Group("/food-entries")
		{
			entries.GET("", entryCtl.List)
			entries.POST("", entryCtl.Create)
			entries.GET("/:id", entryCtl.Get)
			entries.PUT("/:id", entryCtl.Update)
			entries.DELETE("/:id", entryCtl.Delete)
		}

		metrics := protected.Group("/metrics")
		{
			metrics.GET("/daily", metricsCtl.Daily)
			metrics.GET("/range", metricsCtl.Range)
		}

		water := protected.Group("/water")
		{
			water.GET("/summary", waterCtl.Summary)
			water.POST("/log", waterCtl.Log)
			water.DELETE("/:id", waterCtl.Delete)
		}

		favorites := protected.Group("/favorite-meals")
		{
			favorites.GET("", favoriteCtl.List)
			favorites.POST("", favoriteCtl.Create)
			favorites.DELETE("/:id", favoriteCtl.Delete)
			favorites.POST("/:id/log", favoriteCtl.Log)
		}

		protected.POST("/chat", chatCtl.Post)
		protected.POST("/image-recognition/analyze", imageCtl.Analyze)
		protected.POST("/recipe/analyze", recipeCtl.Analyze)
		protected.GET("/suggestions", suggestCtl.Get)

		protected.GET("/realtime/progress", realtimeCtl.ProgressWS)
	}

	return r
}
