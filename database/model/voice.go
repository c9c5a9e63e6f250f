package model

import "time"

type Voice struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"not null"`
	VoiceId    string    `json:"voiceId" gorm:"uniqueIndex;not null"`
	Model      string    `json:"model" gorm:"default:speech-2.6-turbo"`
	Language   string    `json:"language" gorm:"default:en"`
	Gender     string    `json:"gender"`
	PreviewUrl string    `json:"previewUrl"`
	ImageUrl   string    `json:"imageUrl"`
	Enable     bool      `json:"enable" gorm:"default:true"`
	CreatedAt  time.Time `json:"createdAt"`
}
