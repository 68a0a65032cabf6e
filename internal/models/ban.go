package models

import "time"

// Ban blocks an e-mail address from signing in after its account was removed.
type Ban struct {
	ID       uint      `json:"_id" gorm:"primaryKey"`
	UserID   uint      `json:"userId" gorm:"index"`
	Name     string    `json:"name"`
	Email    string    `json:"email" gorm:"uniqueIndex;not null"`
	Reason   string    `json:"reason"`
	BannedBy uint      `json:"bannedBy"`
	BannedAt time.Time `json:"bannedAt" gorm:"autoCreateTime"`
}
