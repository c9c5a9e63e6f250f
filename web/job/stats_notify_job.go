package job

import (
	"fmt"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"
)

// StatsNotifyJob pushes a daily usage digest to the Telegram admins.
type StatsNotifyJob struct {
	usageService   *service.UsageService
	botUserService *service.BotUserService
	tgbotService   service.TelegramService
}

func NewStatsNotifyJob(usageService *service.UsageService, botUserService *service.BotUserService, tgbotService service.TelegramService) *StatsNotifyJob {
	return &StatsNotifyJob{
		usageService:   usageService,
		botUserService: botUserService,
		tgbotService:   tgbotService,
	}
}

func (j *StatsNotifyJob) Run() {
	if !j.tgbotService.IsRunning() {
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	stats, err := j.usageService.StatsSince(since)
	if err != nil {
		logger.Warning("collect usage stats failed:", err)
		return
	}
	userCount, err := j.botUserService.CountUsers()
	if err != nil {
		logger.Warning("count bot users failed:", err)
		return
	}
	activeCount, err := j.botUserService.CountActiveSince(since)
	if err != nil {
		logger.Warning("count active users failed:", err)
		return
	}

	msg := fmt.Sprintf(
		"📈 <b>Daily digest</b>\r\n\r\nRequests: %d\r\nCharacters: %d\r\nUsers: %d (%d active)",
		stats.Requests, stats.Characters, userCount, activeCount)

	if err := j.tgbotService.SendMessage(msg); err != nil {
		logger.Warning("send stats digest failed:", err)
	}
}
