package service

import (
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"

	"gorm.io/gorm"
)

type BotUserService struct {
	accessCodeService *AccessCodeService
	botUserRepo       repository.BotUserRepository
}

func NewBotUserService(botUserRepo repository.BotUserRepository, accessCodeService *AccessCodeService) *BotUserService {
	return &BotUserService{
		botUserRepo:       botUserRepo,
		accessCodeService: accessCodeService,
	}
}

func (s *BotUserService) getBotUserRepo() repository.BotUserRepository {
	if s.botUserRepo == nil {
		s.botUserRepo = repository.NewBotUserRepository(database.GetDB())
	}
	return s.botUserRepo
}

func (s *BotUserService) getAccessCodeService() *AccessCodeService {
	if s.accessCodeService == nil {
		s.accessCodeService = &AccessCodeService{}
	}
	return s.accessCodeService
}

// Register returns the bot user for the Telegram account, creating it on
// first contact.
func (s *BotUserService) Register(telegramId int64, username, firstName, lastName string) (*model.BotUser, error) {
	user, err := s.getBotUserRepo().FindByTelegramId(telegramId)
	if err == nil {
		changed := false
		if user.Username != username {
			user.Username = username
			changed = true
		}
		if user.FirstName != firstName {
			user.FirstName = firstName
			changed = true
		}
		if user.LastName != lastName {
			user.LastName = lastName
			changed = true
		}
		user.LastActive = time.Now()
		if changed {
			if err := s.getBotUserRepo().Update(user); err != nil {
				return nil, err
			}
		} else {
			_ = s.getBotUserRepo().TouchLastActive(telegramId, user.LastActive)
		}
		return user, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	user = &model.BotUser{
		TelegramId: telegramId,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		Speed:      tts.DefaultSpeed,
		Volume:     tts.DefaultVolume,
		Pitch:      tts.DefaultPitch,
		Emotion:    "auto",
		LastActive: time.Now(),
	}
	if err := s.getBotUserRepo().Create(user); err != nil {
		return nil, common.Wrap("BotUserService.Register", err)
	}
	logger.Infof("new bot user registered: %d (%s)", telegramId, username)
	return user, nil
}

func (s *BotUserService) GetByTelegramId(telegramId int64) (*model.BotUser, error) {
	user, err := s.getBotUserRepo().FindByTelegramId(telegramId)
	if database.IsNotFound(err) {
		return nil, common.ErrBotUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// ActivateCode binds an access code to the user and adds its quota to the
// user's balance. Re-activating the code already bound is rejected.
func (s *BotUserService) ActivateCode(telegramId int64, code string) (*model.BotUser, error) {
	user, err := s.GetByTelegramId(telegramId)
	if err != nil {
		return nil, err
	}

	accessCode, err := s.getAccessCodeService().ValidateForActivation(code)
	if err != nil {
		return nil, err
	}

	if user.AccessCode == accessCode.Code {
		return nil, common.Wrapf("BotUserService.ActivateCode", common.ErrCodeNotFound,
			"code %s already active for user %d", code, telegramId)
	}

	user.AccessCode = accessCode.Code
	user.QuotaTotal += accessCode.QuotaRemaining()
	// quota grant and user-slot consumption stand or fall together
	err = database.WithTx(func(tx *gorm.DB) error {
		if err := repository.NewBotUserRepository(tx).Update(user); err != nil {
			return err
		}
		return repository.NewAccessCodeRepository(tx).IncrementUsers(accessCode.Code)
	})
	if err != nil {
		return nil, common.Wrap("BotUserService.ActivateCode", err)
	}
	logger.Infof("user %d activated code %s (+%d chars)", telegramId, accessCode.Code, accessCode.QuotaRemaining())
	return user, nil
}

// CheckQuota verifies the user can spend chars characters.
func (s *BotUserService) CheckQuota(user *model.BotUser, chars int64) error {
	if user.QuotaRemaining() < chars {
		return common.Wrapf("BotUserService.CheckQuota", common.ErrQuotaExceeded,
			"need %d, have %d", chars, user.QuotaRemaining())
	}
	return nil
}

// UseQuota charges the user and the bound code after a successful
// generation.
func (s *BotUserService) UseQuota(user *model.BotUser, chars int64) error {
	err := database.WithTx(func(tx *gorm.DB) error {
		if err := repository.NewBotUserRepository(tx).AddQuotaUsed(user.TelegramId, chars); err != nil {
			return err
		}
		if user.AccessCode != "" {
			return repository.NewAccessCodeRepository(tx).AddQuotaUsed(user.AccessCode, chars)
		}
		return nil
	})
	if err != nil {
		return common.Wrap("BotUserService.UseQuota", err)
	}
	user.QuotaUsed += chars
	return nil
}

// UpdatePreferences stores the user's speech settings.
func (s *BotUserService) UpdatePreferences(telegramId int64, voiceId string, speed float64, pitch int, volume float64, emotion string) error {
	user, err := s.GetByTelegramId(telegramId)
	if err != nil {
		return err
	}
	if voiceId != "" {
		user.VoiceId = voiceId
	}
	if speed > 0 {
		user.Speed = speed
	}
	user.Pitch = pitch
	if volume > 0 {
		user.Volume = volume
	}
	if emotion != "" {
		user.Emotion = emotion
	}
	return s.getBotUserRepo().Update(user)
}

func (s *BotUserService) GetAllUsers() ([]*model.BotUser, error) {
	return s.getBotUserRepo().FindAll()
}

func (s *BotUserService) CountUsers() (int64, error) {
	return s.getBotUserRepo().Count()
}

func (s *BotUserService) CountActiveSince(since time.Time) (int64, error) {
	return s.getBotUserRepo().CountActiveSince(since)
}
