package domain

// User Model
type User struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`                              // Primary key
	Username           string `gorm:"size:50;unique;not null" json:"username"`           // Unique username
	Email              string `gorm:"size:100;unique;not null" json:"email"`             // Unique email, stored lowercase
	Password           string `gorm:"not null" json:"-"`                                 // Hashed password, never serialized
	TotalScore         int    `gorm:"not null;default:0" json:"totalScore"`              // Cumulative score, written only by settlement
	IsAdmin            bool   `gorm:"default:false" json:"isAdmin"`                      // Admin capability flag
	ProfilePicture     string `gorm:"size:255" json:"profilePicture"`                    // Avatar URL
	PreferredTeamTheme string `gorm:"size:50;default:default" json:"preferredTeamTheme"` // UI theme keyed by team
	CreatedAt          int64  `gorm:"autoCreateTime:milli" json:"createdAt"`             // Timestamp of creation in milliseconds
}
