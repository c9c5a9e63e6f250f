package controller

import (
	"errors"

	"github.com/Shaanadrian1/AuthAudioBot/util/crypto"
	"github.com/Shaanadrian1/AuthAudioBot/web/entity"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"
	"github.com/Shaanadrian1/AuthAudioBot/web/session"

	"github.com/gin-gonic/gin"
)

type updateUserForm struct {
	OldUsername string `json:"oldUsername" form:"oldUsername"`
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewUsername string `json:"newUsername" form:"newUsername"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

type SettingController struct {
	settingService service.SettingService
	userService    service.UserService
}

func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/setting")

	g.POST("/all", a.getAllSetting)
	g.POST("/update", a.updateSetting)
	g.POST("/updateUser", a.updateUser)
	g.POST("/enableTwoFactor", a.enableTwoFactor)
	g.POST("/disableTwoFactor", a.disableTwoFactor)
}

func (a *SettingController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	if err != nil {
		jsonMsg(c, "get settings", err)
		return
	}
	jsonObj(c, allSetting, nil)
}

func (a *SettingController) updateSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		jsonMsg(c, "modify settings", err)
		return
	}
	err := a.settingService.UpdateAllSetting(allSetting)
	jsonMsg(c, "modify settings", err)
}

func (a *SettingController) updateUser(c *gin.Context) {
	form := &updateUserForm{}
	if err := c.ShouldBind(form); err != nil {
		jsonMsg(c, "modify user", err)
		return
	}
	user := session.GetLoginUser(c)
	if user.Username != form.OldUsername || !crypto.CheckPasswordHash(user.Password, form.OldPassword) {
		jsonMsg(c, "modify user", errors.New("original username or password is incorrect"))
		return
	}
	if form.NewUsername == "" || form.NewPassword == "" {
		jsonMsg(c, "modify user", errors.New("username and password must not be empty"))
		return
	}
	err := a.userService.UpdateUser(user.Id, form.NewUsername, form.NewPassword)
	if err == nil {
		user.Username = form.NewUsername
		user.Password, _ = crypto.HashPasswordAsBcrypt(form.NewPassword)
		session.SetLoginUser(c, user)
	}
	jsonMsg(c, "modify user", err)
}

func (a *SettingController) enableTwoFactor(c *gin.Context) {
	user := session.GetLoginUser(c)
	uri, err := a.userService.EnableTwoFactor(user.Username)
	if err != nil {
		jsonMsg(c, "enable two-factor auth", err)
		return
	}
	jsonObj(c, uri, nil)
}

func (a *SettingController) disableTwoFactor(c *gin.Context) {
	err := a.userService.DisableTwoFactor()
	jsonMsg(c, "disable two-factor auth", err)
}
