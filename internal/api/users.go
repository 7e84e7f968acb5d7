package api

import (
	"context"                        // Context for Redis operations
	"f1_predictions/internal/domain" // Importing domain models
	"f1_predictions/internal/utils"  // Utility functions
	"net/http"                       // HTTP status codes
	"time"                           // Cache TTLs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RankingEntry is one row of the public leaderboard; email and password stay private
type RankingEntry struct {
	ID                 uint   `json:"id"`                 // User ID
	Username           string `json:"username"`           // Display name
	TotalScore         int    `json:"totalScore"`         // Cumulative score
	ProfilePicture     string `json:"profilePicture"`     // Avatar URL
	PreferredTeamTheme string `json:"preferredTeamTheme"` // UI theme
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	PreferredTeamTheme *string `json:"preferredTeamTheme"` // New theme, unchanged if nil
	ProfilePicture     *string `json:"profilePicture"`     // New avatar URL, unchanged if nil
}

// RankingHandler returns all users ordered by total score descending, cached in Redis
func RankingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var ranking []RankingEntry
		found, err := utils.GetCache(ctx, rdb, utils.RankingCacheKey, &ranking)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"ranking": ranking, "cached": true})
			return
		}
		var users []domain.User
		if err := db.Order("total_score desc").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ranking"})
			return
		}
		ranking = make([]RankingEntry, len(users))
		for i, u := range users {
			ranking[i] = RankingEntry{
				ID:                 u.ID,
				Username:           u.Username,
				TotalScore:         u.TotalScore,
				ProfilePicture:     u.ProfilePicture,
				PreferredTeamTheme: u.PreferredTeamTheme,
			}
		}
		_ = utils.SetCache(ctx, rdb, utils.RankingCacheKey, ranking, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"ranking": ranking, "cached": false})
	}
}

// GetUserHandler returns a public user profile without the password hash
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler updates the authenticated user's display preferences
func UpdateProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if req.PreferredTeamTheme != nil {
			user.PreferredTeamTheme = *req.PreferredTeamTheme
		}
		if req.ProfilePicture != nil {
			user.ProfilePicture = *req.ProfilePicture
		}
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		// The ranking echoes avatar and theme.
		_ = utils.DeleteCache(context.Background(), rdb, utils.RankingCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
	}
}
