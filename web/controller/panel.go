package controller

import (
	"github.com/gin-gonic/gin"
)

type PanelController struct {
	BaseController
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")
	g.Use(a.checkLogin)

	g.GET("/", a.index)
}

func (a *PanelController) index(c *gin.Context) {
	html(c, "index.html", "Dashboard", nil)
}
