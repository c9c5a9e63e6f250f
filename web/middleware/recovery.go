package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware catches panics from handlers so one bad request
// cannot take the panel down.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// A broken pipe means the client went away; log it
				// without the stack.
				var brokenPipe bool
				if ne, ok := err.(*net.OpError); ok {
					if se, ok := ne.Err.(*os.SyscallError); ok {
						msg := strings.ToLower(se.Error())
						if strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer") {
							brokenPipe = true
						}
					}
				}

				if brokenPipe {
					logger.Errorf("[PANIC RECOVER] broken pipe: %v", err)
					c.Error(err.(error)) // nolint: errcheck
					c.Abort()
					return
				}

				if config.IsDebug() {
					stack := string(debug.Stack())
					logger.Errorf("[PANIC RECOVER] panic recovered:\nError: %v\nStack: %s", err, stack)
				} else {
					logger.Errorf("[PANIC RECOVER] panic recovered: %v", err)
				}

				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
