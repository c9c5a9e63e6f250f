//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/job"
)

func setupSignalHandler(sigCh chan os.Signal) {
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR2)
}

// handleCustomSignal deals with platform specific signals. SIGUSR2
// forces an immediate ffmpeg availability check.
func handleCustomSignal(sig os.Signal, ffmpegJob *job.CheckFfmpegJob) bool {
	if sig == syscall.SIGUSR2 {
		if ffmpegJob != nil {
			logger.Info("Received SIGUSR2 signal. Checking ffmpeg availability...")
			ffmpegJob.Run()
		}
		return true
	}
	return false
}
