package service

import (
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
)

type VoiceService struct {
	settingService *SettingService
	voiceRepo      repository.VoiceRepository
}

func NewVoiceService(voiceRepo repository.VoiceRepository, settingService *SettingService) *VoiceService {
	return &VoiceService{
		voiceRepo:      voiceRepo,
		settingService: settingService,
	}
}

func (s *VoiceService) getVoiceRepo() repository.VoiceRepository {
	if s.voiceRepo == nil {
		s.voiceRepo = repository.NewVoiceRepository(database.GetDB())
	}
	return s.voiceRepo
}

func (s *VoiceService) getSettingService() *SettingService {
	if s.settingService == nil {
		s.settingService = &SettingService{}
	}
	return s.settingService
}

func (s *VoiceService) GetVoice(voiceId string) (*model.Voice, error) {
	voice, err := s.getVoiceRepo().FindByVoiceId(voiceId)
	if database.IsNotFound(err) {
		return nil, common.ErrVoiceNotFound
	} else if err != nil {
		return nil, err
	}
	return voice, nil
}

func (s *VoiceService) GetEnabledVoices() ([]*model.Voice, error) {
	return s.getVoiceRepo().FindEnabled()
}

func (s *VoiceService) GetAllVoices() ([]*model.Voice, error) {
	return s.getVoiceRepo().FindAll()
}

// ResolveVoiceId maps an empty or disabled selection onto the configured
// default, falling back to the built-in voice.
func (s *VoiceService) ResolveVoiceId(voiceId string) (string, error) {
	if voiceId != "" {
		voice, err := s.GetVoice(voiceId)
		if err == nil && voice.Enable {
			return voice.VoiceId, nil
		}
		if err != nil && err != common.ErrVoiceNotFound {
			return "", err
		}
	}
	configured, err := s.getSettingService().GetDefaultVoiceId()
	if err != nil {
		return "", err
	}
	if configured != "" {
		if voice, err := s.GetVoice(configured); err == nil && voice.Enable {
			return voice.VoiceId, nil
		}
	}
	return tts.DefaultVoiceID, nil
}

func (s *VoiceService) AddVoice(voice *model.Voice) error {
	if voice.Model == "" {
		voice.Model = tts.DefaultModel
	}
	return s.getVoiceRepo().Create(voice)
}

func (s *VoiceService) UpdateVoice(voice *model.Voice) error {
	return s.getVoiceRepo().Update(voice)
}

func (s *VoiceService) DeleteVoice(id int) error {
	return s.getVoiceRepo().Delete(id)
}
