package service

import (
	"github.com/google/wire"
)

// ServiceSet bundles every service provider for wire.
var ServiceSet = wire.NewSet(
	NewSettingService,
	NewUserService,
	NewAccessCodeService,
	NewBotUserService,
	NewVoiceService,
	NewUsageService,
	NewSpeechService,
	NewServerService,
	NewTgBot,
	NewLogForwarder,
	// bind the concrete bot to the TelegramService interface
	wire.Bind(new(TelegramService), new(*Tgbot)),
	NewStatus,
)
