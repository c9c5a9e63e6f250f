package service

import (
	"context"
	"runtime"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/tts"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

type ProcessState string

const (
	Running ProcessState = "running"
	Stop    ProcessState = "stop"
	Error   ProcessState = "error"
)

type Status struct {
	T        time.Time `json:"-"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	NetIO struct {
		Up   uint64 `json:"up"`
		Down uint64 `json:"down"`
	} `json:"netIO"`
	NetTraffic struct {
		Sent uint64 `json:"sent"`
		Recv uint64 `json:"recv"`
	} `json:"netTraffic"`
	Ffmpeg struct {
		State    ProcessState `json:"state"`
		ErrorMsg string       `json:"errorMsg"`
		Version  string       `json:"version"`
	} `json:"ffmpeg"`
	Bot struct {
		State    ProcessState `json:"state"`
		ErrorMsg string       `json:"errorMsg"`
	} `json:"bot"`
	Uptime   uint64    `json:"uptime"`
	Loads    []float64 `json:"loads"`
	AppStats struct {
		Goroutines int    `json:"goroutines"`
		Mem        uint64 `json:"mem"`
		Uptime     uint64 `json:"uptime"`
	} `json:"appStats"`
}

type ServerService struct {
	tgService TelegramService
	startedAt time.Time
}

func NewServerService() *ServerService {
	return &ServerService{
		startedAt: time.Now(),
	}
}

// SetTelegramService injects the bot after wiring, breaking the service
// construction cycle.
func (s *ServerService) SetTelegramService(tgService TelegramService) {
	s.tgService = tgService
}

func NewStatus() *Status {
	return &Status{}
}

// GetStatus samples the host and application state. lastStatus, when
// present, is the previous sample used for the network rates.
func (s *ServerService) GetStatus(lastStatus *Status) *Status {
	now := time.Now()
	status := &Status{T: now}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}
	status.CpuCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores failed:", err)
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	diskInfo, err := disk.Usage("/")
	if err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	ioStats, err := net.IOCounters(false)
	if err != nil {
		logger.Warning("get io counters failed:", err)
	} else if len(ioStats) > 0 {
		ioStat := ioStats[0]
		status.NetTraffic.Sent = ioStat.BytesSent
		status.NetTraffic.Recv = ioStat.BytesRecv

		if lastStatus != nil {
			duration := now.Sub(lastStatus.T)
			if seconds := duration.Seconds(); seconds > 0 &&
				ioStat.BytesSent >= lastStatus.NetTraffic.Sent &&
				ioStat.BytesRecv >= lastStatus.NetTraffic.Recv {
				status.NetIO.Up = uint64(float64(ioStat.BytesSent-lastStatus.NetTraffic.Sent) / seconds)
				status.NetIO.Down = uint64(float64(ioStat.BytesRecv-lastStatus.NetTraffic.Recv) / seconds)
			}
		}
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	if tts.FfmpegAvailable() {
		status.Ffmpeg.State = Running
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		version, err := tts.FfmpegVersion(ctx)
		cancel()
		if err != nil {
			status.Ffmpeg.State = Error
			status.Ffmpeg.ErrorMsg = err.Error()
		} else {
			status.Ffmpeg.Version = version
		}
	} else {
		status.Ffmpeg.State = Stop
		status.Ffmpeg.ErrorMsg = "ffmpeg not found on PATH"
	}

	if s.tgService != nil && s.tgService.IsRunning() {
		status.Bot.State = Running
	} else {
		status.Bot.State = Stop
	}

	var rtm runtime.MemStats
	runtime.ReadMemStats(&rtm)
	status.AppStats.Goroutines = runtime.NumGoroutine()
	status.AppStats.Mem = rtm.Sys
	status.AppStats.Uptime = uint64(now.Sub(s.startedAt).Seconds())

	return status
}
