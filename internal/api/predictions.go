package api

import (
	"errors"                         // Sentinel error comparison
	"f1_predictions/internal/domain" // Importing domain models
	"net/http"                       // HTTP status codes
	"time"                           // Prediction deadline check

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// SubmitPredictionRequest is the prediction intake payload
type SubmitPredictionRequest struct {
	RaceID          uint   `json:"raceId" binding:"required"`          // Target race
	PredictedWinner string `json:"predictedWinner" binding:"required"` // Predicted 1st place driver
	PredictedSecond string `json:"predictedSecond" binding:"required"` // Predicted 2nd place driver
	PredictedThird  string `json:"predictedThird" binding:"required"`  // Predicted 3rd place driver
}

// SubmitPredictionHandler creates or replaces the authenticated user's
// prediction for a race. Accepted only while the race's predictions are open
// and the race has not started; Score is never touched here.
func SubmitPredictionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req SubmitPredictionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var race domain.Race
		if err := db.First(&race, req.RaceID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Race not found"})
			return
		}
		if time.Now().After(race.Date) || !race.IsPredictionOpen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Predictions for this race are closed"})
			return
		}
		var prediction domain.Prediction
		err := db.Where("user_id = ? AND race_id = ?", userID, req.RaceID).First(&prediction).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up prediction"})
			return
		}
		created := errors.Is(err, gorm.ErrRecordNotFound)
		if created {
			prediction = domain.Prediction{
				UserID: userID.(uint),
				RaceID: req.RaceID,
			}
		}
		// Full replacement of the three names; last write wins.
		prediction.PredictedWinner = req.PredictedWinner
		prediction.PredictedSecond = req.PredictedSecond
		prediction.PredictedThird = req.PredictedThird
		if err := db.Save(&prediction).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Predicting user
				"race_id": req.RaceID,  // Target race
				"error":   err.Error(), // Error message
			}).Error("Failed to save prediction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prediction"})
			return
		}
		if created {
			c.JSON(http.StatusCreated, gin.H{"message": "Prediction created", "prediction": prediction})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Prediction updated", "prediction": prediction})
	}
}

// MyPredictionsHandler returns the authenticated user's predictions, newest first
func MyPredictionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var predictions []domain.Prediction
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&predictions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"predictions": predictions})
	}
}

// UserPredictionsHandler returns another user's predictions; only the user
// themselves or an admin may look
func UserPredictionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var target domain.User
		if err := db.First(&target, "id = ?", c.Param("userId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if target.ID != requesterID.(uint) {
			var requester domain.User
			if err := db.First(&requester, requesterID).Error; err != nil || !requester.IsAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this user's predictions"})
				return
			}
		}
		var predictions []domain.Prediction
		if err := db.Where("user_id = ?", target.ID).Order("created_at desc").Find(&predictions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"predictions": predictions})
	}
}

// MyPredictionForRaceHandler returns the authenticated user's prediction for one race
func MyPredictionForRaceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var prediction domain.Prediction
		err := db.Where("user_id = ? AND race_id = ?", userID, c.Param("raceId")).First(&prediction).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No prediction found for this race"})
			return
		}
		c.JSON(http.StatusOK, prediction)
	}
}
