package service

import (
	"testing"

	"github.com/Shaanadrian1/AuthAudioBot/database"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if err := database.InitDB(":memory:"); err != nil {
		t.Fatalf("init test db: %v", err)
	}
}

type testServices struct {
	setting *SettingService
	user    *UserService
	code    *AccessCodeService
	botUser *BotUserService
	voice   *VoiceService
	usage   *UsageService
	speech  *SpeechService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	setupTestDB(t)

	setting := NewSettingService(nil)
	code := NewAccessCodeService(nil, setting)
	botUser := NewBotUserService(nil, code)
	voice := NewVoiceService(nil, setting)
	usage := NewUsageService(nil)

	return &testServices{
		setting: setting,
		user:    NewUserService(nil, setting),
		code:    code,
		botUser: botUser,
		voice:   voice,
		usage:   usage,
		speech:  NewSpeechService(setting, botUser, voice, usage),
	}
}
