package controller

import (
	"strconv"

	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/gin-gonic/gin"
)

type VoiceController struct {
	voiceService service.VoiceService
}

func NewVoiceController(g *gin.RouterGroup) *VoiceController {
	a := &VoiceController{}
	a.initRouter(g)
	return a
}

func (a *VoiceController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/voices")

	g.POST("/list", a.getVoices)
	g.POST("/add", a.addVoice)
	g.POST("/update", a.updateVoice)
	g.POST("/del/:id", a.delVoice)
}

func (a *VoiceController) getVoices(c *gin.Context) {
	voices, err := a.voiceService.GetAllVoices()
	if err != nil {
		jsonMsg(c, "get voices", err)
		return
	}
	jsonObj(c, voices, nil)
}

func (a *VoiceController) addVoice(c *gin.Context) {
	voice := &model.Voice{}
	if err := c.ShouldBind(voice); err != nil {
		jsonMsg(c, "add voice", err)
		return
	}
	jsonMsg(c, "add voice", a.voiceService.AddVoice(voice))
}

func (a *VoiceController) updateVoice(c *gin.Context) {
	voice := &model.Voice{}
	if err := c.ShouldBind(voice); err != nil {
		jsonMsg(c, "update voice", err)
		return
	}
	jsonMsg(c, "update voice", a.voiceService.UpdateVoice(voice))
}

func (a *VoiceController) delVoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "delete voice", err)
		return
	}
	jsonMsg(c, "delete voice", a.voiceService.DeleteVoice(id))
}
