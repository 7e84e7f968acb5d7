package api

import (
	"context"                            // Context for Redis operations
	"errors"                             // Sentinel error comparison
	"f1_predictions/internal/domain"     // Importing domain models
	"f1_predictions/internal/settlement" // Settlement engine
	"f1_predictions/internal/utils"      // Utility functions
	"net/http"                           // HTTP status codes
	"strconv"                            // String conversion
	"strings"                            // Driver name trimming

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CreateResultRequest is the admin payload for an official race result
type CreateResultRequest struct {
	RaceID         uint   `json:"raceId" binding:"required"`         // Race the result belongs to
	OfficialWinner string `json:"officialWinner" binding:"required"` // Official 1st place driver
	OfficialSecond string `json:"officialSecond" binding:"required"` // Official 2nd place driver
	OfficialThird  string `json:"officialThird" binding:"required"`  // Official 3rd place driver
}

// CreateResultHandler records the official result for a race (admin only).
// A race's result is write-once; a second submission is rejected without
// touching the stored one.
func CreateResultHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var race domain.Race
		if err := db.First(&race, req.RaceID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			return
		}
		var existing domain.RaceResult
		if err := db.Where("race_id = ?", req.RaceID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Results for this race have already been recorded"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up results"})
			return
		}
		result := domain.RaceResult{
			RaceID:         req.RaceID,
			OfficialWinner: strings.TrimSpace(req.OfficialWinner),
			OfficialSecond: strings.TrimSpace(req.OfficialSecond),
			OfficialThird:  strings.TrimSpace(req.OfficialThird),
		}
		if err := db.Create(&result).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"race_id": req.RaceID,  // Target race
				"error":   err.Error(), // Error message
			}).Error("Failed to record race result")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record race result"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Race result recorded", "result": result})
	}
}

// SettleRaceHandler runs settlement for a race (admin only) and invalidates
// the caches the settled scores feed
func SettleRaceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	engine := settlement.NewEngine(db)
	return func(c *gin.Context) {
		raceID, err := strconv.ParseUint(c.Param("raceId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			return
		}
		outcome, err := engine.Settle(uint(raceID))
		if err != nil {
			switch {
			case errors.Is(err, settlement.ErrResultNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Official results not found for this race. Record the results first."})
			case errors.Is(err, settlement.ErrRaceNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			case errors.Is(err, settlement.ErrAlreadySettled):
				c.JSON(http.StatusConflict, gin.H{"error": "Points for this race have already been calculated"})
			default:
				logrus.WithFields(logrus.Fields{
					"race_id": raceID,      // Race being settled
					"error":   err.Error(), // Error message
				}).Error("Settlement failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement failed"})
			}
			return
		}
		// Totals and race flags changed; drop the stale views.
		_ = utils.DeleteCache(context.Background(), rdb,
			utils.RankingCacheKey, utils.RaceListCacheKey, utils.RaceCacheKey(outcome.RaceID))
		c.JSON(http.StatusOK, gin.H{
			"message": "Points calculated and assigned for race: " + outcome.RaceName,
			"outcome": outcome,
		})
	}
}
