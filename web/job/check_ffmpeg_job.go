package job

import (
	"context"
	"sync"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"
)

// CheckFfmpegJob watches the ffmpeg binary the audio converter depends
// on. When it disappears from PATH the admins get a single alert, and
// another message once it is back.
type CheckFfmpegJob struct {
	tgbotService service.TelegramService

	wasAvailable bool
	mu           sync.Mutex
	running      bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func NewCheckFfmpegJob(tgbotService service.TelegramService) *CheckFfmpegJob {
	return &CheckFfmpegJob{
		tgbotService: tgbotService,
		wasAvailable: true,
	}
}

func (j *CheckFfmpegJob) Name() string {
	return "CheckFfmpegJob"
}

func (j *CheckFfmpegJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return nil
	}

	// a fresh context per run keeps the watcher alive across restarts
	j.ctx, j.cancel = context.WithCancel(context.Background())
	j.running = true

	j.wg.Add(1)
	go func(ctx context.Context) {
		defer j.wg.Done()
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.Run()
			case <-ctx.Done():
				return
			}
		}
	}(j.ctx)
	return nil
}

func (j *CheckFfmpegJob) Stop() error {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return nil
	}
	j.cancel()
	j.running = false
	j.mu.Unlock()

	j.wg.Wait()
	return nil
}

func (j *CheckFfmpegJob) Run() {
	available := tts.FfmpegAvailable()
	if available == j.wasAvailable {
		return
	}
	j.wasAvailable = available

	if available {
		logger.Info("ffmpeg is back on PATH")
		j.notify("✅ ffmpeg is available again, voice conversion restored")
	} else {
		logger.Error("ffmpeg disappeared from PATH, voice conversion will fail")
		j.notify("🛑 ffmpeg is missing, voice conversion will fail until it is reinstalled")
	}
}

func (j *CheckFfmpegJob) notify(msg string) {
	if j.tgbotService == nil || !j.tgbotService.IsRunning() {
		return
	}
	if err := j.tgbotService.SendMessage(msg); err != nil {
		logger.Warning("send ffmpeg alert failed:", err)
	}
}
