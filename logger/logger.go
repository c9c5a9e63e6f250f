package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/op/go-logging"
)

// LogListener receives every record that passes the configured level.
// The Telegram log forwarder implements this to relay warnings to admins.
type LogListener interface {
	OnLog(level logging.Level, message string, formattedLog string)
}

// ListenerBackend wraps another backend and fans records out to listeners.
type ListenerBackend struct {
	listeners []LogListener
	mu        sync.RWMutex
	next      logging.Backend
}

func NewListenerBackend(next logging.Backend) *ListenerBackend {
	return &ListenerBackend{
		listeners: make([]LogListener, 0),
		next:      next,
	}
}

func (b *ListenerBackend) AddListener(listener LogListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

func (b *ListenerBackend) RemoveListener(listener LogListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l == listener {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			break
		}
	}
}

// Log implements logging.Backend.
func (b *ListenerBackend) Log(level logging.Level, calldepth int, rec *logging.Record) error {
	if b.next != nil {
		if err := b.next.Log(level, calldepth+1, rec); err != nil {
			return err
		}
	}

	b.mu.RLock()
	listeners := make([]LogListener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	if len(listeners) > 0 {
		formattedLog := rec.Formatted(calldepth + 1)
		for _, listener := range listeners {
			go listener.OnLog(level, rec.Message(), formattedLog)
		}
	}

	return nil
}

type bufferedLog struct {
	time  string
	level logging.Level
	log   string
}

var (
	logger          *logging.Logger
	logBuffer       []bufferedLog
	logBufferMu     sync.Mutex
	listenerBackend *ListenerBackend
)

func init() {
	InitLogger(logging.INFO)
}

func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger("audiobot")

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:2006/01/02 15:04:05} %{level} - %{message}`)

	backendFormatter := logging.NewBackendFormatter(backend, format)
	backendLeveled := logging.AddModuleLevel(backendFormatter)
	backendLeveled.SetLevel(level, "audiobot")

	listenerBackend = NewListenerBackend(backendLeveled)
	newLogger.SetBackend(logging.AddModuleLevel(listenerBackend))

	logger = newLogger
}

func Debug(args ...any) {
	logger.Debug(args...)
	addToBuffer("DEBUG", fmt.Sprint(args...))
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
	addToBuffer("DEBUG", fmt.Sprintf(format, args...))
}

func Info(args ...any) {
	logger.Info(args...)
	addToBuffer("INFO", fmt.Sprint(args...))
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
	addToBuffer("INFO", fmt.Sprintf(format, args...))
}

func Notice(args ...any) {
	logger.Notice(args...)
	addToBuffer("NOTICE", fmt.Sprint(args...))
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
	addToBuffer("NOTICE", fmt.Sprintf(format, args...))
}

func Warning(args ...any) {
	logger.Warning(args...)
	addToBuffer("WARNING", fmt.Sprint(args...))
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
	addToBuffer("WARNING", fmt.Sprintf(format, args...))
}

func Error(args ...any) {
	logger.Error(args...)
	addToBuffer("ERROR", fmt.Sprint(args...))
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
	addToBuffer("ERROR", fmt.Sprintf(format, args...))
}

func addToBuffer(level string, newLog string) {
	logBufferMu.Lock()
	defer logBufferMu.Unlock()

	const maxSize = 10240
	if len(logBuffer) >= maxSize {
		logBuffer = logBuffer[1:]
	}

	logLevel, _ := logging.LogLevel(level)
	logBuffer = append(logBuffer, bufferedLog{
		time:  time.Now().Format("2006/01/02 15:04:05"),
		level: logLevel,
		log:   newLog,
	})
}

// GetLogs returns up to c buffered entries at or below the given level,
// newest first. The panel log view reads from here.
func GetLogs(c int, level string) []string {
	logBufferMu.Lock()
	defer logBufferMu.Unlock()

	var output []string
	logLevel, _ := logging.LogLevel(level)

	for i := len(logBuffer) - 1; i >= 0 && len(output) <= c; i-- {
		if logBuffer[i].level <= logLevel {
			output = append(output, fmt.Sprintf("%s %s - %s", logBuffer[i].time, logBuffer[i].level, logBuffer[i].log))
		}
	}
	return output
}

func AddLogListener(listener LogListener) {
	if listenerBackend != nil {
		listenerBackend.AddListener(listener)
	}
}

func RemoveLogListener(listener LogListener) {
	if listenerBackend != nil {
		listenerBackend.RemoveListener(listener)
	}
}
