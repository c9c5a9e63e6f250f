package bootstrap

import (
	"os/exec"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
)

// swapped out in tests
var (
	ffmpegAvailable = tts.FfmpegAvailable
	execCommand     = exec.Command
)

// EnsureFfmpeg guarantees the ffmpeg binary the audio converter needs
// is on PATH. When the probe fails, installation through apt-get is
// attempted exactly once; if ffmpeg is still missing afterwards the
// startup must abort.
func EnsureFfmpeg() error {
	if ffmpegAvailable() {
		logger.Debug("ffmpeg found on PATH")
		return nil
	}

	logger.Info("ffmpeg not found, installing via apt-get")
	if out, err := execCommand("apt-get", "update").CombinedOutput(); err != nil {
		logger.Warningf("apt-get update failed: %v: %s", err, out)
	}
	if out, err := execCommand("apt-get", "install", "-y", "ffmpeg").CombinedOutput(); err != nil {
		return common.Wrapf("bootstrap.EnsureFfmpeg", err, "apt-get install ffmpeg failed: %s", out)
	}

	if !ffmpegAvailable() {
		return common.NewError("ffmpeg is still missing after installation")
	}
	logger.Info("ffmpeg installed")
	return nil
}
