package service

import (
	"context"
	"sync"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
)

// speechClient is the slice of the MiniMax client the service needs,
// narrow so tests can stub the network.
type speechClient interface {
	Generate(ctx context.Context, req tts.SpeechRequest) (*tts.SpeechResult, error)
}

// SpeechService runs the whole generation pipeline: quota check, MiniMax
// call, Opus conversion and usage accounting.
type SpeechService struct {
	settingService *SettingService
	botUserService *BotUserService
	voiceService   *VoiceService
	usageService   *UsageService

	mu          sync.Mutex
	client      speechClient
	clientCreds string
}

func NewSpeechService(settingService *SettingService, botUserService *BotUserService, voiceService *VoiceService, usageService *UsageService) *SpeechService {
	return &SpeechService{
		settingService: settingService,
		botUserService: botUserService,
		voiceService:   voiceService,
		usageService:   usageService,
	}
}

// getClient returns the cached MiniMax client, rebuilding it whenever the
// stored credentials differ from the ones it was built with. Updates from
// the panel therefore take effect on the next generation.
func (s *SpeechService) getClient() (speechClient, error) {
	groupID, err := s.settingService.GetMinimaxGroupId()
	if err != nil {
		return nil, err
	}
	apiKey, err := s.settingService.GetMinimaxApiKey()
	if err != nil {
		return nil, err
	}
	baseURL, err := s.settingService.GetMinimaxBaseUrl()
	if err != nil {
		return nil, err
	}
	creds := groupID + "\n" + apiKey + "\n" + baseURL

	s.mu.Lock()
	defer s.mu.Unlock()
	// a client assigned directly (tests) carries no snapshot and is kept
	if s.client != nil && (s.clientCreds == "" || s.clientCreds == creds) {
		return s.client, nil
	}

	var opts []tts.ClientOption
	if baseURL != "" {
		opts = append(opts, tts.WithBaseURL(baseURL))
	}
	client, err := tts.NewClient(groupID, apiKey, opts...)
	if err != nil {
		return nil, err
	}
	s.client = client
	s.clientCreds = creds
	return client, nil
}

// Generate renders text as a voice note for the given bot user and
// charges the quota on success.
func (s *SpeechService) Generate(ctx context.Context, user *model.BotUser, text string) (*tts.SpeechResult, error) {
	chars := int64(len([]rune(text)))
	if chars == 0 {
		return nil, common.Wrap("SpeechService.Generate", common.ErrTextTooLong)
	}
	if chars > config.MaxTTSTextLength {
		return nil, common.Wrapf("SpeechService.Generate", common.ErrTextTooLong,
			"%d chars, limit %d", chars, config.MaxTTSTextLength)
	}
	if err := s.botUserService.CheckQuota(user, chars); err != nil {
		return nil, err
	}

	voiceId, err := s.voiceService.ResolveVoiceId(user.VoiceId)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.SpeechRequestTimeout)
	defer cancel()

	result, err := client.Generate(ctx, tts.SpeechRequest{
		Text:    text,
		VoiceID: voiceId,
		Speed:   user.Speed,
		Volume:  user.Volume,
		Pitch:   user.Pitch,
		Emotion: user.Emotion,
	})
	if err != nil {
		return nil, err
	}

	if err := s.botUserService.UseQuota(user, chars); err != nil {
		logger.Error("charge quota failed:", err)
	}
	if err := s.usageService.Record(user.Id, text, voiceId); err != nil {
		logger.Warning("record usage failed:", err)
	}
	return result, nil
}
