package domain

// Prediction Model
type Prediction struct {
	ID              uint   `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID          uint   `gorm:"uniqueIndex:idx_user_race;not null" json:"userId"` // Owning user
	RaceID          uint   `gorm:"uniqueIndex:idx_user_race;not null" json:"raceId"` // Target race; one prediction per (user, race)
	PredictedWinner string `gorm:"size:100;not null" json:"predictedWinner"`         // Predicted 1st place driver name
	PredictedSecond string `gorm:"size:100;not null" json:"predictedSecond"`         // Predicted 2nd place driver name
	PredictedThird  string `gorm:"size:100;not null" json:"predictedThird"`          // Predicted 3rd place driver name
	Score           int    `gorm:"not null;default:0" json:"score"`                  // Points, written only by settlement
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"createdAt"`            // Timestamp of creation in milliseconds
}
