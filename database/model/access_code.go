package model

import "time"

type AccessCode struct {
	Id           int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Code         string     `json:"code" gorm:"uniqueIndex;not null"`
	QuotaTotal   int64      `json:"quotaTotal" gorm:"not null"`
	QuotaUsed    int64      `json:"quotaUsed" gorm:"default:0"`
	MaxUsers     int        `json:"maxUsers" gorm:"default:1"`
	CurrentUsers int        `json:"currentUsers" gorm:"default:0"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Enable       bool       `json:"enable" gorm:"default:true"`
	CreatedBy    string     `json:"createdBy" gorm:"default:admin"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (c *AccessCode) QuotaRemaining() int64 {
	return c.QuotaTotal - c.QuotaUsed
}

// IsExpired reports whether the code has passed its expiry date.
// Codes without an expiry date never expire.
func (c *AccessCode) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && now.After(*c.ExpiryDate)
}

// HasUserSlot reports whether another user may still activate the code.
// MaxUsers <= 0 means unlimited.
func (c *AccessCode) HasUserSlot() bool {
	return c.MaxUsers <= 0 || c.CurrentUsers < c.MaxUsers
}
