package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/entity"

	"github.com/gin-gonic/gin"
)

func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	addr := c.Request.RemoteAddr
	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return ip
}

func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		m.Msg = msg
	} else {
		m.Success = false
		m.Msg = msg + " failed: " + err.Error()
		logger.Warning(msg, " failed: ", err)
	}
	c.JSON(http.StatusOK, m)
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

func html(c *gin.Context, fileName string, title string, data gin.H) {
	a := gin.H{
		"title":     title,
		"cur_ver":   config.GetVersion(),
		"base_path": c.GetString("base_path"),
	}
	for key, value := range data {
		a[key] = value
	}
	c.HTML(http.StatusOK, fileName, a)
}

func isAjax(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Type"), "json") ||
		strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest")
}
