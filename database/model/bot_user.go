package model

import "time"

// BotUser is a Telegram user known to the bot. Quota is bound to the user
// when an access code is activated; QuotaRemaining is derived, never stored.
type BotUser struct {
	Id         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	TelegramId int64  `json:"telegramId" gorm:"uniqueIndex;not null"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`

	AccessCode string `json:"accessCode" gorm:"index"`
	QuotaTotal int64  `json:"quotaTotal" gorm:"default:0"`
	QuotaUsed  int64  `json:"quotaUsed" gorm:"default:0"`

	// Speech preferences.
	VoiceId string  `json:"voiceId"`
	Speed   float64 `json:"speed" gorm:"default:0.9"`
	Pitch   int     `json:"pitch" gorm:"default:0"`
	Volume  float64 `json:"volume" gorm:"default:1.6"`
	Emotion string  `json:"emotion" gorm:"default:auto"`

	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}

func (u *BotUser) QuotaRemaining() int64 {
	return u.QuotaTotal - u.QuotaUsed
}
