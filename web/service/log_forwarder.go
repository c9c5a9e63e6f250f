package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/logger"

	"github.com/op/go-logging"
)

// LogForwarder relays warning and error records to the Telegram admins.
type LogForwarder struct {
	telegramService TelegramService
	forwardLevel    logging.Level
	isEnabled       bool
	logBuffer       chan *LogMessage
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	mu              sync.RWMutex
}

type LogMessage struct {
	Level     logging.Level
	Message   string
	Formatted string
	Timestamp time.Time
}

func NewLogForwarder(telegramService TelegramService) *LogForwarder {
	return &LogForwarder{
		telegramService: telegramService,
		forwardLevel:    logging.WARNING,
		logBuffer:       make(chan *LogMessage, 500),
	}
}

// SetForwardLevel changes the minimum level that gets relayed.
func (lf *LogForwarder) SetForwardLevel(level logging.Level) {
	lf.mu.Lock()
	lf.forwardLevel = level
	lf.mu.Unlock()
}

func (lf *LogForwarder) Start() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.isEnabled {
		return nil
	}

	if !lf.telegramService.IsRunning() {
		logger.Warning("telegram bot is not running, log forwarding disabled")
		return nil
	}

	// a fresh context per run, so the worker survives a panel restart
	lf.ctx, lf.cancel = context.WithCancel(context.Background())

	lf.isEnabled = true
	logger.AddLogListener(lf)

	lf.wg.Add(1)
	go lf.worker(lf.ctx)

	logger.Info("log forwarder started")
	return nil
}

func (lf *LogForwarder) Stop() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if !lf.isEnabled {
		return nil
	}

	lf.cancel()

	done := make(chan struct{})
	go func() {
		lf.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("log forwarder stopped")
	case <-time.After(5 * time.Second):
		logger.Warning("log forwarder stop timed out")
	}

	logger.RemoveLogListener(lf)

	lf.isEnabled = false
	return nil
}

func (lf *LogForwarder) IsEnabled() bool {
	lf.mu.RLock()
	defer lf.mu.RUnlock()
	return lf.isEnabled
}

// OnLog implements logger.LogListener.
func (lf *LogForwarder) OnLog(level logging.Level, message string, formattedLog string) {
	lf.mu.RLock()
	enabled := lf.isEnabled
	forwardLevel := lf.forwardLevel
	lf.mu.RUnlock()

	if !enabled {
		return
	}
	// lower value means more severe in go-logging
	if level > forwardLevel {
		return
	}
	if lf.shouldSkipLog(message) {
		return
	}

	logMsg := &LogMessage{
		Level:     level,
		Message:   message,
		Formatted: formattedLog,
		Timestamp: time.Now(),
	}

	select {
	case lf.logBuffer <- logMsg:
	default:
		// buffer full, drop
	}
}

// shouldSkipLog filters records that would loop back through the bot.
func (lf *LogForwarder) shouldSkipLog(message string) bool {
	lowered := strings.ToLower(message)
	return strings.Contains(lowered, "telegram") || strings.Contains(lowered, "tgbot")
}

func (lf *LogForwarder) worker(ctx context.Context) {
	defer lf.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case logMsg := <-lf.logBuffer:
			lf.forward(logMsg)
		}
	}
}

func (lf *LogForwarder) forward(logMsg *LogMessage) {
	icon := "⚠️"
	if logMsg.Level <= logging.ERROR {
		icon = "🛑"
	}
	text := fmt.Sprintf("%s <b>%s</b>\r\n\r\n<code>%s</code>\r\n\r\n%s",
		icon, logMsg.Level, logMsg.Message, logMsg.Timestamp.Format("2006-01-02 15:04:05"))

	if err := lf.telegramService.SendMessage(text); err != nil {
		// bot may have stopped meanwhile
		return
	}
}
