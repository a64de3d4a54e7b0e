package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/habitrail/habit-tracker-api/internal/config"
	"github.com/habitrail/habit-tracker-api/internal/constants"
	"github.com/habitrail/habit-tracker-api/internal/database"
	"github.com/habitrail/habit-tracker-api/internal/handlers"
	"github.com/habitrail/habit-tracker-api/internal/logger"
	"github.com/habitrail/habit-tracker-api/internal/middleware"
	"github.com/habitrail/habit-tracker-api/internal/repository"
	"github.com/habitrail/habit-tracker-api/internal/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	log.Info("database connection established")

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatal("failed to add indexes", "error", err)
	}

	// Redis backs the auth rate limiter; the API runs without it.
	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisHost + ":" + cfg.RedisPort,
		})
	} else {
		log.Warn("redis not configured, auth rate limiting disabled")
	}

	r := buildRouter(cfg, log, database.GetDB(), rdb)

	log.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}

func buildRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Repositories
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewActivityLogRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewVerificationTokenRepository(db)

	// Services
	var mailer services.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = services.NewResendMailer(cfg.ResendAPIKey, cfg.EmailVerificationURL)
	} else {
		mailer = services.NewLogMailer(cfg.EmailVerificationURL, log)
	}

	authService := services.NewAuthService(userRepo, tokenRepo, mailer, log, cfg.JWTSecret, cfg.RefreshTokenSecret)
	habitService := services.NewHabitService(habitRepo)
	activityService := services.NewActivityService(habitRepo, logRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	habitHandler := handlers.NewHabitHandler(habitService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Habit Tracker API is running",
		})
	})

	// Auth routes (public, rate limited)
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(rdb, log, constants.AuthRateLimit, constants.AuthRateWindow))
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.GET("/verify-token", authHandler.VerifyToken)
		auth.GET("/verify-email", authHandler.VerifyEmail)
	}

	// Habit routes (protected, scoped to the token's user)
	habits := r.Group("/habits")
	habits.Use(middleware.RequireAuth(authService))
	{
		habits.POST("", habitHandler.CreateHabit)

		owned := habits.Group("/:userId")
		owned.Use(middleware.RequireSelf())
		{
			owned.GET("", activityHandler.ListHabits)
			owned.GET("/summary", activityHandler.Summary)
			owned.PUT("", habitHandler.ReorderHabits)
			owned.PUT("/:habitId", habitHandler.RenameHabit)
			owned.DELETE("/:habitId", habitHandler.DeleteHabit)
			owned.POST("/:habitId/toggle", activityHandler.ToggleHabit)
		}
	}

	return r
}
