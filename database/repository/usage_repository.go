package repository

import (
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/database/model"

	"gorm.io/gorm"
)

// UsageStats aggregates generation activity over a period.
type UsageStats struct {
	Requests   int64 `json:"requests"`
	Characters int64 `json:"characters"`
}

// DailyStat is one day of aggregated generation activity.
type DailyStat struct {
	Day        string `json:"day"`
	Requests   int64  `json:"requests"`
	Characters int64  `json:"characters"`
}

// VoiceStat counts generations per voice.
type VoiceStat struct {
	VoiceId  string `json:"voiceId"`
	Requests int64  `json:"requests"`
}

// UsageRepository gives access to speech generation history.
type UsageRepository interface {
	Create(record *model.UsageRecord) error
	FindRecentByUser(botUserId int, limit int) ([]*model.UsageRecord, error)
	StatsSince(since time.Time) (*UsageStats, error)
	StatsByUserSince(botUserId int, since time.Time) (*UsageStats, error)
	DailyStatsSince(since time.Time) ([]*DailyStat, error)
	TopVoicesSince(since time.Time, limit int) ([]*VoiceStat, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)

	GetDB() *gorm.DB
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{
		db: db,
	}
}

func (r *usageRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *usageRepository) Create(record *model.UsageRecord) error {
	return r.db.Create(record).Error
}

func (r *usageRepository) FindRecentByUser(botUserId int, limit int) ([]*model.UsageRecord, error) {
	var records []*model.UsageRecord
	err := r.db.Model(model.UsageRecord{}).
		Where("bot_user_id = ?", botUserId).
		Order("created_at desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *usageRepository) StatsSince(since time.Time) (*UsageStats, error) {
	stats := &UsageStats{}
	err := r.db.Model(model.UsageRecord{}).
		Where("created_at >= ?", since).
		Select("count(*) as requests, coalesce(sum(char_count), 0) as characters").
		Scan(stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *usageRepository) StatsByUserSince(botUserId int, since time.Time) (*UsageStats, error) {
	stats := &UsageStats{}
	err := r.db.Model(model.UsageRecord{}).
		Where("bot_user_id = ? AND created_at >= ?", botUserId, since).
		Select("count(*) as requests, coalesce(sum(char_count), 0) as characters").
		Scan(stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *usageRepository) DailyStatsSince(since time.Time) ([]*DailyStat, error) {
	var stats []*DailyStat
	err := r.db.Model(model.UsageRecord{}).
		Where("created_at >= ?", since).
		Select("date(created_at) as day, count(*) as requests, coalesce(sum(char_count), 0) as characters").
		Group("date(created_at)").
		Order("day").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *usageRepository) TopVoicesSince(since time.Time, limit int) ([]*VoiceStat, error) {
	var stats []*VoiceStat
	err := r.db.Model(model.UsageRecord{}).
		Where("created_at >= ?", since).
		Select("voice_id, count(*) as requests").
		Group("voice_id").
		Order("requests desc").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *usageRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(model.UsageRecord{})
	return result.RowsAffected, result.Error
}
