package main

import (
	"context"                            // context package is needed for Redis operations
	"f1_predictions/internal/api"        // Custom package for API handlers
	"f1_predictions/internal/config"     // Custom package for configuration
	"f1_predictions/internal/middleware" // Custom package for middleware
	"log"                                // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	jwtAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret)
	adminOnly := middleware.AdminOnlyMiddleware(db)

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(db, cfg.JWTSecret)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))       // Login endpoint
	authGroup.GET("/user", jwtAuth, api.CurrentUserHandler(db))         // Current user endpoint

	// Race routes (reads public, writes admin only)
	raceGroup := r.Group("/api/races")
	raceGroup.GET("", api.ListRacesHandler(db, redisClient))                       // Race calendar endpoint
	raceGroup.GET("/:id", api.GetRaceHandler(db, redisClient))                     // Single race endpoint
	raceGroup.POST("", jwtAuth, adminOnly, api.CreateRaceHandler(db, redisClient)) // Create race endpoint
	raceGroup.PUT("/:id", jwtAuth, adminOnly, api.UpdateRaceHandler(db, redisClient)) // Update race endpoint

	// Prediction routes (protected by JWT)
	predictionGroup := r.Group("/api/predictions")
	predictionGroup.Use(jwtAuth)
	predictionGroup.POST("", api.SubmitPredictionHandler(db))                // Prediction intake endpoint
	predictionGroup.GET("/my-predictions", api.MyPredictionsHandler(db))     // Own predictions endpoint
	predictionGroup.GET("/user/:userId", api.UserPredictionsHandler(db))     // Another user's predictions endpoint
	predictionGroup.GET("/:raceId/my", api.MyPredictionForRaceHandler(db))   // Own prediction for one race endpoint

	// User routes
	userGroup := r.Group("/api/users")
	userGroup.GET("/ranking", api.RankingHandler(db, redisClient))              // Leaderboard endpoint
	userGroup.GET("/:id", api.GetUserHandler(db))                               // Public profile endpoint
	userGroup.PUT("/profile", jwtAuth, api.UpdateProfileHandler(db, redisClient)) // Profile update endpoint

	// Result routes (admin only)
	resultGroup := r.Group("/api/race-results")
	resultGroup.Use(jwtAuth, adminOnly)
	resultGroup.POST("", api.CreateResultHandler(db))                           // Official result endpoint
	resultGroup.POST("/:raceId/settle", api.SettleRaceHandler(db, redisClient)) // Settlement endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
