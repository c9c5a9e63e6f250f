package controller

import (
	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/gin-gonic/gin"
)

type APIController struct {
	BaseController

	serverController  *ServerController
	settingController *SettingController
	codeController    *CodeController
	voiceController   *VoiceController
	botUserController *BotUserController

	serverService *service.ServerService
}

func NewAPIController(g *gin.RouterGroup, serverService *service.ServerService) *APIController {
	a := &APIController{
		serverService: serverService,
	}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	api := g.Group("/panel/api")
	api.Use(a.checkLogin)

	a.serverController = NewServerController(api, a.serverService)
	a.settingController = NewSettingController(api)
	a.codeController = NewCodeController(api)
	a.voiceController = NewVoiceController(api)
	a.botUserController = NewBotUserController(api)
}
