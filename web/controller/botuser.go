package controller

import (
	"strconv"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/gin-gonic/gin"
)

type BotUserController struct {
	botUserService service.BotUserService
	usageService   service.UsageService
}

func NewBotUserController(g *gin.RouterGroup) *BotUserController {
	a := &BotUserController{}
	a.initRouter(g)
	return a
}

func (a *BotUserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/users")

	g.POST("/list", a.getUsers)
	g.POST("/stats", a.getStats)
	g.POST("/usage/:id", a.getUserUsage)
}

func (a *BotUserController) getUsers(c *gin.Context) {
	users, err := a.botUserService.GetAllUsers()
	if err != nil {
		jsonMsg(c, "get bot users", err)
		return
	}
	jsonObj(c, users, nil)
}

// getStats summarizes the last 24 hours plus the total user count.
func (a *BotUserController) getStats(c *gin.Context) {
	since := time.Now().Add(-24 * time.Hour)
	stats, err := a.usageService.StatsSince(since)
	if err != nil {
		jsonMsg(c, "get usage stats", err)
		return
	}
	total, err := a.botUserService.CountUsers()
	if err != nil {
		jsonMsg(c, "get usage stats", err)
		return
	}
	active, err := a.botUserService.CountActiveSince(since)
	if err != nil {
		jsonMsg(c, "get usage stats", err)
		return
	}
	daily, err := a.usageService.DailySeries(7)
	if err != nil {
		jsonMsg(c, "get usage stats", err)
		return
	}
	topVoices, err := a.usageService.TopVoices(30, 10)
	if err != nil {
		jsonMsg(c, "get usage stats", err)
		return
	}
	jsonObj(c, gin.H{
		"requests":    stats.Requests,
		"characters":  stats.Characters,
		"totalUsers":  total,
		"activeUsers": active,
		"daily":       daily,
		"topVoices":   topVoices,
	}, nil)
}

func (a *BotUserController) getUserUsage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "get user usage", err)
		return
	}
	records, err := a.usageService.RecentByUser(id, 20)
	if err != nil {
		jsonMsg(c, "get user usage", err)
		return
	}
	jsonObj(c, records, nil)
}
