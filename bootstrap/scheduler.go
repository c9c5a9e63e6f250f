package bootstrap

import (
	"github.com/Shaanadrian1/AuthAudioBot/web/job"
)

// RegisterJobs hooks the long-running watchers into the JobManager.
// Cron-driven jobs are scheduled by the web server instead.
func RegisterJobs(jobManager *job.Manager, app *App) *job.CheckFfmpegJob {
	ffmpegJob := job.NewCheckFfmpegJob(app.TgBot)
	jobManager.Register(ffmpegJob)

	return ffmpegJob
}
