package job

import (
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"
)

type PurgeUsageJob struct {
	usageService *service.UsageService
}

func NewPurgeUsageJob(usageService *service.UsageService) *PurgeUsageJob {
	return &PurgeUsageJob{
		usageService: usageService,
	}
}

// Run deletes usage records past the retention window.
func (j *PurgeUsageJob) Run() {
	if _, err := j.usageService.PurgeOld(); err != nil {
		logger.Warning("purge usage records failed:", err)
	}
}
