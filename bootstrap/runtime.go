package bootstrap

import (
	"log"

	"github.com/Shaanadrian1/AuthAudioBot/web"
	"github.com/Shaanadrian1/AuthAudioBot/web/global"
	"github.com/Shaanadrian1/AuthAudioBot/web/job"
)

// Runtime holds the running servers and background jobs on top of an
// initialized App.
type Runtime struct {
	App        *App
	WebServer  *web.Server
	JobManager *job.Manager
	FfmpegJob  *job.CheckFfmpegJob
}

func NewRuntime(app *App) *Runtime {
	return &Runtime{
		App:        app,
		JobManager: job.NewManager(),
	}
}

// StartWebServer boots the panel, which also starts the Telegram bot
// and log forwarder when the bot is enabled.
func (r *Runtime) StartWebServer() error {
	r.WebServer = web.NewServer(
		r.App.ServerService,
		r.App.SettingService,
		r.App.BotUserService,
		r.App.UsageService,
		r.App.TgBot,
		r.App.LogForwarder,
	)

	global.SetWebServer(r.WebServer)
	return r.WebServer.Start()
}

// StartJobs registers the long-running watchers and starts them.
func (r *Runtime) StartJobs() {
	r.FfmpegJob = RegisterJobs(r.JobManager, r.App)
	r.JobManager.StartAll()
}

// StopAll shuts everything down: jobs first, then the web server with
// its bot and forwarder.
func (r *Runtime) StopAll() {
	r.JobManager.StopAll()

	if r.WebServer != nil {
		_ = r.WebServer.Stop()
	}
}

// Restart cycles all services, used on SIGHUP so setting changes take
// effect.
func (r *Runtime) Restart() error {
	r.StopAll()

	if err := r.StartWebServer(); err != nil {
		return err
	}
	log.Println("Web server restarted successfully.")

	r.JobManager.StartAll()
	return nil
}
