package api

import (
	"context"                        // Context for Redis operations
	"f1_predictions/internal/domain" // Importing domain models
	"f1_predictions/internal/utils"  // Utility functions
	"net/http"                       // HTTP status codes
	"strconv"                        // String conversion
	"time"                           // Race dates and cache TTLs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CreateRaceRequest is the admin payload for a new race
type CreateRaceRequest struct {
	Name     string    `json:"name" binding:"required"`     // Unique race name
	Location string    `json:"location" binding:"required"` // Circuit name
	Date     time.Time `json:"date" binding:"required"`     // Scheduled start, UTC
	Season   int       `json:"season" binding:"required"`   // Championship year
	Round    int       `json:"round" binding:"required"`    // Ordinal within the season
}

// UpdateRaceRequest carries partial race updates; nil fields are left unchanged
type UpdateRaceRequest struct {
	Name             *string    `json:"name"`             // New race name
	Location         *string    `json:"location"`         // New circuit name
	Date             *time.Time `json:"date"`             // New scheduled start
	IsPredictionOpen *bool      `json:"isPredictionOpen"` // Open or close predictions manually
	IsRaceCompleted  *bool      `json:"isRaceCompleted"`  // Administrative override of the completed flag
	Season           *int       `json:"season"`           // New season
	Round            *int       `json:"round"`            // New round
}

// CreateRaceHandler creates a race (admin only)
func CreateRaceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		race := domain.Race{
			Name:             req.Name,
			Location:         req.Location,
			Date:             req.Date,
			IsPredictionOpen: true,
			Season:           req.Season,
			Round:            req.Round,
		}
		if err := db.Create(&race).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A race with that name already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"race_id": race.ID,     // New race ID
			"name":    race.Name,   // Race name
			"season":  race.Season, // Season
			"round":   race.Round,  // Round
		}).Info("Race created")
		_ = utils.DeleteCache(context.Background(), rdb, utils.RaceListCacheKey)
		c.JSON(http.StatusCreated, race)
	}
}

// ListRacesHandler returns all races ordered by date ascending, cached in Redis
func ListRacesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var races []domain.Race
		found, err := utils.GetCache(ctx, rdb, utils.RaceListCacheKey, &races)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"races": races, "cached": true})
			return
		}
		if err := db.Order("date asc").Find(&races).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch races"})
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.RaceListCacheKey, races, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"races": races, "cached": false})
	}
}

// GetRaceHandler returns a single race by ID, cached in Redis
func GetRaceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		raceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			return
		}
		ctx := context.Background()
		cacheKey := utils.RaceCacheKey(uint(raceID))
		var race domain.Race
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &race); err == nil && found {
			c.JSON(http.StatusOK, race)
			return
		}
		if err := db.First(&race, uint(raceID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, race, 60*time.Second)
		c.JSON(http.StatusOK, race)
	}
}

// UpdateRaceHandler applies a partial update to a race (admin only)
func UpdateRaceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var race domain.Race
		if err := db.First(&race, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			return
		}
		var req UpdateRaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Name != nil {
			race.Name = *req.Name
		}
		if req.Location != nil {
			race.Location = *req.Location
		}
		if req.Date != nil {
			race.Date = *req.Date
		}
		if req.IsPredictionOpen != nil {
			race.IsPredictionOpen = *req.IsPredictionOpen
		}
		if req.IsRaceCompleted != nil {
			race.IsRaceCompleted = *req.IsRaceCompleted
		}
		if req.Season != nil {
			race.Season = *req.Season
		}
		if req.Round != nil {
			race.Round = *req.Round
		}
		if err := db.Save(&race).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"race_id": race.ID,     // Race being updated
				"error":   err.Error(), // Error message
			}).Error("Failed to update race")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update race"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.RaceListCacheKey, utils.RaceCacheKey(race.ID))
		c.JSON(http.StatusOK, race)
	}
}
