package web

import (
	"github.com/Shaanadrian1/AuthAudioBot/logger"
)

type CronLogger struct{}

func (l CronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debugf("[Cron] %s %v", msg, keysAndValues)
}

func (l CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Errorf("[PANIC RECOVER] [Cron] %s: %v %v", msg, err, keysAndValues)
}
