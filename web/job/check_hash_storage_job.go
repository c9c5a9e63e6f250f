package job

import (
	"github.com/Shaanadrian1/AuthAudioBot/web/service"
)

type CheckHashStorageJob struct {
	tgbotService *service.Tgbot
}

func NewCheckHashStorageJob(tgbotService *service.Tgbot) *CheckHashStorageJob {
	return &CheckHashStorageJob{
		tgbotService: tgbotService,
	}
}

// Run drops expired callback hashes from the bot's storage.
func (j *CheckHashStorageJob) Run() {
	if storage := j.tgbotService.GetHashStorage(); storage != nil {
		storage.SweepExpired()
	}
}
