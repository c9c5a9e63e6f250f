package model

import "time"

// UsageRecord is one generated speech request. Text holds only an excerpt
// of the source text, never the full input.
type UsageRecord struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	BotUserId int       `json:"botUserId" gorm:"index:idx_usage_user_date"`
	Text      string    `json:"text"`
	CharCount int       `json:"charCount"`
	VoiceId   string    `json:"voiceId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_usage_user_date"`
}
