//go:build windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Shaanadrian1/AuthAudioBot/web/job"
)

func setupSignalHandler(sigCh chan os.Signal) {
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
}

// handleCustomSignal deals with platform specific signals. Windows has
// no SIGUSR2, so nothing to handle.
func handleCustomSignal(sig os.Signal, ffmpegJob *job.CheckFfmpegJob) bool {
	return false
}
