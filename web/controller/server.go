package controller

import (
	"strconv"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/gin-gonic/gin"
)

type ServerController struct {
	BaseController

	serverService *service.ServerService

	lastStatus        *service.Status
	lastGetStatusTime time.Time
}

func NewServerController(g *gin.RouterGroup, serverService *service.ServerService) *ServerController {
	a := &ServerController{
		serverService:     serverService,
		lastGetStatusTime: time.Now(),
	}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")

	g.POST("/status", a.status)
	g.POST("/logs/:count", a.getLogs)
}

// status reuses the last sample when polled faster than every 2
// seconds, so a busy dashboard does not hammer gopsutil.
func (a *ServerController) status(c *gin.Context) {
	now := time.Now()
	if a.lastStatus == nil || now.Sub(a.lastGetStatusTime) > 2*time.Second {
		a.lastStatus = a.serverService.GetStatus(a.lastStatus)
		a.lastGetStatusTime = now
	}
	jsonObj(c, a.lastStatus, nil)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.PostForm("level")
	if level == "" {
		level = "info"
	}
	logs := logger.GetLogs(count, level)
	jsonObj(c, logs, nil)
}
