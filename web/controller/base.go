package controller

import (
	"net/http"
	"strings"

	"github.com/Shaanadrian1/AuthAudioBot/web/session"

	"github.com/gin-gonic/gin"
)

type BaseController struct{}

func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		// Unauthenticated API requests get a plain 404 so scanners
		// cannot probe for the panel API.
		if strings.Contains(c.Request.RequestURI, "/api/") {
			pureJsonMsg(c, http.StatusNotFound, false, "404 page not found")
			c.Abort()
			return
		}

		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "login expired, please log in again")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		}
		c.Abort()
	} else {
		c.Next()
	}
}
