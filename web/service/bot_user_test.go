package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotUserService_Register(t *testing.T) {
	s := newTestServices(t)

	user, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)
	assert.Greater(t, user.Id, 0)
	assert.Equal(t, tts.DefaultSpeed, user.Speed)
	assert.Equal(t, "auto", user.Emotion)
	assert.Equal(t, int64(0), user.QuotaTotal)

	// second contact updates instead of duplicating
	again, err := s.botUser.Register(1001, "alice2", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, user.Id, again.Id)
	assert.Equal(t, "alice2", again.Username)

	count, err := s.botUser.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestBotUserService_ActivateCode(t *testing.T) {
	s := newTestServices(t)

	_, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)

	code, err := s.code.CreateCode(10000, 1, 30, "test", "")
	require.NoError(t, err)

	user, err := s.botUser.ActivateCode(1001, code.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), user.QuotaRemaining())
	assert.Equal(t, code.Code, user.AccessCode)

	// reactivating the same code is rejected
	_, err = s.botUser.ActivateCode(1001, code.Code)
	assert.Error(t, err)

	// user limit: a second user cannot take a single-user code
	_, err = s.botUser.Register(1002, "bob", "Bob", "")
	require.NoError(t, err)
	_, err = s.botUser.ActivateCode(1002, code.Code)
	assert.True(t, errors.Is(err, common.ErrCodeUserLimit))
}

func TestAccessCodeService_DeleteDetachesUsers(t *testing.T) {
	s := newTestServices(t)

	_, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)
	code, err := s.code.CreateCode(1000, 2, 30, "test", "")
	require.NoError(t, err)
	_, err = s.botUser.ActivateCode(1001, code.Code)
	require.NoError(t, err)

	require.NoError(t, s.code.DeleteCode(code.Id))

	// the binding is gone, the granted quota stays
	detached, err := s.botUser.GetByTelegramId(1001)
	require.NoError(t, err)
	assert.Empty(t, detached.AccessCode)
	assert.Equal(t, int64(1000), detached.QuotaTotal)

	_, err = s.code.GetCode(code.Code)
	assert.True(t, errors.Is(err, common.ErrCodeNotFound))

	assert.True(t, errors.Is(s.code.DeleteCode(code.Id), common.ErrCodeNotFound))
}

func TestBotUserService_ActivateCodeEdgeCases(t *testing.T) {
	s := newTestServices(t)

	_, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)

	_, err = s.botUser.ActivateCode(1001, "TTS-DOESNOTEXIST")
	assert.True(t, errors.Is(err, common.ErrCodeNotFound))

	// expired code
	expired, err := s.code.CreateCode(1000, 1, 1, "test", "")
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	expired.ExpiryDate = &past
	require.NoError(t, s.code.getAccessCodeRepo().Update(expired))

	_, err = s.botUser.ActivateCode(1001, expired.Code)
	assert.True(t, errors.Is(err, common.ErrCodeExpired))

	// disabled code
	disabled, err := s.code.CreateCode(1000, 1, 30, "test", "")
	require.NoError(t, err)
	require.NoError(t, s.code.SetEnable(disabled.Id, false))

	_, err = s.botUser.ActivateCode(1001, disabled.Code)
	assert.True(t, errors.Is(err, common.ErrCodeNotFound))

	// unregistered user
	_, err = s.botUser.ActivateCode(9999, "TTS-WHATEVER")
	assert.True(t, errors.Is(err, common.ErrBotUserNotFound))
}

func TestBotUserService_Quota(t *testing.T) {
	s := newTestServices(t)

	_, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)
	code, err := s.code.CreateCode(100, 1, 30, "test", "")
	require.NoError(t, err)
	user, err := s.botUser.ActivateCode(1001, code.Code)
	require.NoError(t, err)

	assert.NoError(t, s.botUser.CheckQuota(user, 100))
	assert.True(t, errors.Is(s.botUser.CheckQuota(user, 101), common.ErrQuotaExceeded))

	require.NoError(t, s.botUser.UseQuota(user, 60))
	assert.Equal(t, int64(40), user.QuotaRemaining())

	// the charge reaches both the user row and the code row
	stored, err := s.botUser.GetByTelegramId(1001)
	require.NoError(t, err)
	assert.Equal(t, int64(60), stored.QuotaUsed)

	storedCode, err := s.code.GetCode(code.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(60), storedCode.QuotaUsed)
}

func TestBotUserService_UpdatePreferences(t *testing.T) {
	s := newTestServices(t)

	_, err := s.botUser.Register(1001, "alice", "Alice", "")
	require.NoError(t, err)

	require.NoError(t, s.botUser.UpdatePreferences(1001, "voice-x", 1.2, 2, 1.8, "happy"))

	user, err := s.botUser.GetByTelegramId(1001)
	require.NoError(t, err)
	assert.Equal(t, "voice-x", user.VoiceId)
	assert.Equal(t, 1.2, user.Speed)
	assert.Equal(t, 2, user.Pitch)
	assert.Equal(t, 1.8, user.Volume)
	assert.Equal(t, "happy", user.Emotion)
}

func TestVoiceService_ResolveVoiceId(t *testing.T) {
	s := newTestServices(t)

	// empty preference falls back to the built-in voice
	voiceId, err := s.voice.ResolveVoiceId("")
	require.NoError(t, err)
	assert.Equal(t, tts.DefaultVoiceID, voiceId)

	require.NoError(t, s.voice.AddVoice(&model.Voice{
		Name:    "Narrator",
		VoiceId: "narrator-01",
		Enable:  true,
	}))

	voiceId, err = s.voice.ResolveVoiceId("narrator-01")
	require.NoError(t, err)
	assert.Equal(t, "narrator-01", voiceId)

	// unknown voices resolve to the default, not an error
	voiceId, err = s.voice.ResolveVoiceId("ghost")
	require.NoError(t, err)
	assert.Equal(t, tts.DefaultVoiceID, voiceId)

	// the configured panel default wins over the built-in
	require.NoError(t, s.setting.SetDefaultVoiceId("narrator-01"))
	voiceId, err = s.voice.ResolveVoiceId("")
	require.NoError(t, err)
	assert.Equal(t, "narrator-01", voiceId)
}
