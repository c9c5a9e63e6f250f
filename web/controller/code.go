package controller

import (
	"strconv"

	"github.com/Shaanadrian1/AuthAudioBot/web/service"
	"github.com/Shaanadrian1/AuthAudioBot/web/session"

	"github.com/gin-gonic/gin"
)

type createCodeForm struct {
	Quota      int64  `json:"quota" form:"quota"`
	MaxUsers   int    `json:"maxUsers" form:"maxUsers"`
	ExpiryDays int    `json:"expiryDays" form:"expiryDays"`
	Notes      string `json:"notes" form:"notes"`
}

type CodeController struct {
	codeService service.AccessCodeService
}

func NewCodeController(g *gin.RouterGroup) *CodeController {
	a := &CodeController{}
	a.initRouter(g)
	return a
}

func (a *CodeController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/codes")

	g.POST("/list", a.getCodes)
	g.POST("/add", a.addCode)
	g.POST("/del/:id", a.delCode)
	g.POST("/enable/:id", a.enableCode)
	g.POST("/disable/:id", a.disableCode)
}

func (a *CodeController) getCodes(c *gin.Context) {
	codes, err := a.codeService.GetAllCodes()
	if err != nil {
		jsonMsg(c, "get access codes", err)
		return
	}
	jsonObj(c, codes, nil)
}

func (a *CodeController) addCode(c *gin.Context) {
	form := &createCodeForm{}
	if err := c.ShouldBind(form); err != nil {
		jsonMsg(c, "create access code", err)
		return
	}
	createdBy := ""
	if user := session.GetLoginUser(c); user != nil {
		createdBy = user.Username
	}
	code, err := a.codeService.CreateCode(form.Quota, form.MaxUsers, form.ExpiryDays, createdBy, form.Notes)
	if err != nil {
		jsonMsg(c, "create access code", err)
		return
	}
	jsonObj(c, code, nil)
}

func (a *CodeController) delCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "delete access code", err)
		return
	}
	jsonMsg(c, "delete access code", a.codeService.DeleteCode(id))
}

func (a *CodeController) enableCode(c *gin.Context) {
	a.setCodeEnable(c, true)
}

func (a *CodeController) disableCode(c *gin.Context) {
	a.setCodeEnable(c, false)
}

func (a *CodeController) setCodeEnable(c *gin.Context, enable bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "update access code", err)
		return
	}
	jsonMsg(c, "update access code", a.codeService.SetEnable(id, enable))
}
