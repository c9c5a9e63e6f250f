package service

import (
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
)

type UsageService struct {
	usageRepo repository.UsageRepository
}

func NewUsageService(usageRepo repository.UsageRepository) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
	}
}

func (s *UsageService) getUsageRepo() repository.UsageRepository {
	if s.usageRepo == nil {
		s.usageRepo = repository.NewUsageRepository(database.GetDB())
	}
	return s.usageRepo
}

// Record stores one generation. Only an excerpt of the text is kept.
func (s *UsageService) Record(botUserId int, text string, voiceId string) error {
	excerpt := text
	if len([]rune(excerpt)) > config.UsageExcerptLength {
		excerpt = string([]rune(excerpt)[:config.UsageExcerptLength])
	}
	return s.getUsageRepo().Create(&model.UsageRecord{
		BotUserId: botUserId,
		Text:      excerpt,
		CharCount: len([]rune(text)),
		VoiceId:   voiceId,
	})
}

func (s *UsageService) RecentByUser(botUserId int, limit int) ([]*model.UsageRecord, error) {
	return s.getUsageRepo().FindRecentByUser(botUserId, limit)
}

func (s *UsageService) StatsSince(since time.Time) (*repository.UsageStats, error) {
	return s.getUsageRepo().StatsSince(since)
}

func (s *UsageService) StatsByUserSince(botUserId int, since time.Time) (*repository.UsageStats, error) {
	return s.getUsageRepo().StatsByUserSince(botUserId, since)
}

// DailySeries returns per-day totals for the last n days.
func (s *UsageService) DailySeries(days int) ([]*repository.DailyStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	return s.getUsageRepo().DailyStatsSince(since)
}

// TopVoices lists the most used voices of the last n days.
func (s *UsageService) TopVoices(days int, limit int) ([]*repository.VoiceStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	return s.getUsageRepo().TopVoicesSince(since, limit)
}

// PurgeOld deletes records past the retention window.
func (s *UsageService) PurgeOld() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -config.UsageRetentionDays)
	deleted, err := s.getUsageRepo().DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Infof("purged %d usage records older than %s", deleted, cutoff.Format(time.DateOnly))
	}
	return deleted, nil
}
