package service

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandMessage(telegramId int64, text string) *telego.Message {
	return &telego.Message{
		Text: text,
		From: &telego.User{ID: telegramId, Username: "alice", FirstName: "Alice"},
		Chat: telego.Chat{ID: telegramId},
	}
}

func TestTgbot_MycodeCommandActivates(t *testing.T) {
	s := newTestServices(t)
	bot := NewTgBot(s.setting, s.botUser, s.code, s.voice, s.usage, s.speech, NewServerService(), NewStatus())

	_, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)
	code, err := s.code.CreateCode(1000, 1, 30, "test", "")
	require.NoError(t, err)

	bot.answerCommand(commandMessage(1001, "/mycode "+code.Code), 1001, false)

	user, err := s.botUser.GetByTelegramId(1001)
	require.NoError(t, err)
	assert.Equal(t, code.Code, user.AccessCode)
	assert.Equal(t, int64(1000), user.QuotaRemaining())
}

func TestTgbot_UnknownCommandHasNoEffect(t *testing.T) {
	s := newTestServices(t)
	bot := NewTgBot(s.setting, s.botUser, s.code, s.voice, s.usage, s.speech, NewServerService(), NewStatus())

	_, err := s.botUser.Register(1002, "alice", "Alice", "")
	require.NoError(t, err)
	code, err := s.code.CreateCode(1000, 1, 30, "test", "")
	require.NoError(t, err)

	bot.answerCommand(commandMessage(1002, "/activate "+code.Code), 1002, false)

	user, err := s.botUser.GetByTelegramId(1002)
	require.NoError(t, err)
	assert.Empty(t, user.AccessCode)
}
