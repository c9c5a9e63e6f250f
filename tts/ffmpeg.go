package tts

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
)

// execCommand and lookPath are swappable for tests.
var (
	execCommand = exec.CommandContext
	lookPath    = exec.LookPath
)

// FfmpegAvailable reports whether the ffmpeg binary can be found on PATH.
func FfmpegAvailable() bool {
	_, err := lookPath("ffmpeg")
	return err == nil
}

// FfmpegVersion returns the first line of "ffmpeg -version", or an error
// when the binary is missing or broken.
func FfmpegVersion(ctx context.Context) (string, error) {
	out, err := execCommand(ctx, "ffmpeg", "-version").Output()
	if err != nil {
		return "", common.Wrapf("tts.FfmpegVersion", common.ErrAudioConvert, "ffmpeg -version: %v", err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// opusArgs converts the input to a mono 48kHz Opus stream inside an OGG
// container, the format Telegram expects for voice messages.
func opusArgs(inPath, outPath string) []string {
	return []string{
		"-y",
		"-i", inPath,
		"-c:a", "libopus",
		"-ar", "48000",
		"-ac", "1",
		"-b:a", "64k",
		"-vbr", "on",
		"-compression_level", "10",
		"-application", "audio",
		"-frame_duration", "20",
		"-f", "ogg",
		outPath,
	}
}

// ConvertToOpus transcodes MP3 audio to OGG/Opus via ffmpeg, using temp
// files for the input and output.
func ConvertToOpus(ctx context.Context, mp3Data []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "audiobot-convert-*")
	if err != nil {
		return nil, common.Wrapf("tts.ConvertToOpus", common.ErrAudioConvert, "temp dir: %v", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logger.Warningf("failed to remove temp dir %s: %v", tmpDir, err)
		}
	}()

	inPath := filepath.Join(tmpDir, "input.mp3")
	outPath := filepath.Join(tmpDir, "output.ogg")

	if err := os.WriteFile(inPath, mp3Data, 0o600); err != nil {
		return nil, common.Wrapf("tts.ConvertToOpus", common.ErrAudioConvert, "write input: %v", err)
	}

	cmd := execCommand(ctx, "ffmpeg", opusArgs(inPath, outPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		logger.Errorf("ffmpeg conversion failed: %v: %s", err, string(out))
		return nil, common.Wrapf("tts.ConvertToOpus", common.ErrAudioConvert, "ffmpeg: %v", err)
	}

	oggData, err := os.ReadFile(outPath)
	if err != nil {
		return nil, common.Wrapf("tts.ConvertToOpus", common.ErrAudioConvert, "read output: %v", err)
	}
	return oggData, nil
}
