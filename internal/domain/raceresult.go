package domain

// RaceResult Model
type RaceResult struct {
	ID             uint   `gorm:"primaryKey" json:"id"`                    // Primary key
	RaceID         uint   `gorm:"uniqueIndex;not null" json:"raceId"`      // One official result per race, write-once
	OfficialWinner string `gorm:"size:100;not null" json:"officialWinner"` // Official 1st place driver name, trimmed at write
	OfficialSecond string `gorm:"size:100;not null" json:"officialSecond"` // Official 2nd place driver name, trimmed at write
	OfficialThird  string `gorm:"size:100;not null" json:"officialThird"`  // Official 3rd place driver name, trimmed at write
	CreatedAt      int64  `gorm:"autoCreateTime:milli" json:"createdAt"`   // Timestamp of creation in milliseconds
}
