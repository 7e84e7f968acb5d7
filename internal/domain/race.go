package domain

import "time"

// Race Model
type Race struct {
	ID               uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Name             string    `gorm:"size:100;unique;not null" json:"name"`   // Unique race name, e.g. "Bahrain Grand Prix"
	Location         string    `gorm:"size:100;not null" json:"location"`      // Circuit name
	Date             time.Time `gorm:"not null" json:"date"`                   // Scheduled start, UTC
	IsPredictionOpen bool      `gorm:"default:true" json:"isPredictionOpen"`   // Predictions accepted while true and before Date
	IsRaceCompleted  bool      `gorm:"default:false" json:"isRaceCompleted"`   // Set once settlement has run; guards re-settlement
	Season           int       `gorm:"not null" json:"season"`                 // Championship year, e.g. 2025
	Round            int       `gorm:"not null" json:"round"`                  // Ordinal within the season
}
