package service

import (
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
	"github.com/Shaanadrian1/AuthAudioBot/util/random"

	"gorm.io/gorm"
)

type AccessCodeService struct {
	settingService *SettingService
	accessCodeRepo repository.AccessCodeRepository
}

func NewAccessCodeService(accessCodeRepo repository.AccessCodeRepository, settingService *SettingService) *AccessCodeService {
	return &AccessCodeService{
		accessCodeRepo: accessCodeRepo,
		settingService: settingService,
	}
}

func (s *AccessCodeService) getAccessCodeRepo() repository.AccessCodeRepository {
	if s.accessCodeRepo == nil {
		s.accessCodeRepo = repository.NewAccessCodeRepository(database.GetDB())
	}
	return s.accessCodeRepo
}

func (s *AccessCodeService) getSettingService() *SettingService {
	if s.settingService == nil {
		s.settingService = &SettingService{}
	}
	return s.settingService
}

// GenerateCode builds a fresh code string like TTS-7K2M9QX4FJW8NBT.
func GenerateCode() string {
	return config.AccessCodePrefix + random.NumUpperSeq(config.AccessCodeRandomLength)
}

// CreateCode mints a new access code. Zero quota, users or expiry days
// fall back to the configured defaults; expiryDays < 0 means no expiry.
func (s *AccessCodeService) CreateCode(quota int64, maxUsers int, expiryDays int, createdBy string, notes string) (*model.AccessCode, error) {
	if quota <= 0 {
		defaultQuota, err := s.getSettingService().GetCodeQuota()
		if err != nil {
			return nil, err
		}
		quota = int64(defaultQuota)
	}
	if maxUsers == 0 {
		maxUsers = 1
	}
	if expiryDays == 0 {
		defaultDays, err := s.getSettingService().GetCodeExpiryDays()
		if err != nil {
			return nil, err
		}
		expiryDays = defaultDays
	}

	var expiry *time.Time
	if expiryDays > 0 {
		t := time.Now().AddDate(0, 0, expiryDays)
		expiry = &t
	}
	if createdBy == "" {
		createdBy = "admin"
	}

	code := &model.AccessCode{
		Code:       GenerateCode(),
		QuotaTotal: quota,
		MaxUsers:   maxUsers,
		ExpiryDate: expiry,
		Enable:     true,
		CreatedBy:  createdBy,
		Notes:      notes,
	}
	if err := s.getAccessCodeRepo().Create(code); err != nil {
		return nil, common.Wrap("AccessCodeService.CreateCode", err)
	}
	logger.Infof("access code %s created: quota=%d maxUsers=%d", code.Code, quota, maxUsers)
	return code, nil
}

func (s *AccessCodeService) GetCode(code string) (*model.AccessCode, error) {
	accessCode, err := s.getAccessCodeRepo().FindByCode(code)
	if database.IsNotFound(err) {
		return nil, common.ErrCodeNotFound
	} else if err != nil {
		return nil, err
	}
	return accessCode, nil
}

func (s *AccessCodeService) GetAllCodes() ([]*model.AccessCode, error) {
	return s.getAccessCodeRepo().FindAll()
}

// ValidateForActivation checks that a code can still be activated by a
// new user.
func (s *AccessCodeService) ValidateForActivation(code string) (*model.AccessCode, error) {
	accessCode, err := s.GetCode(code)
	if err != nil {
		return nil, err
	}
	if !accessCode.Enable {
		return nil, common.ErrCodeNotFound
	}
	if accessCode.IsExpired(time.Now()) {
		return nil, common.ErrCodeExpired
	}
	if !accessCode.HasUserSlot() {
		return nil, common.ErrCodeUserLimit
	}
	return accessCode, nil
}

func (s *AccessCodeService) SetEnable(id int, enable bool) error {
	code, err := s.getAccessCodeRepo().FindById(id)
	if database.IsNotFound(err) {
		return common.ErrCodeNotFound
	} else if err != nil {
		return err
	}
	code.Enable = enable
	return s.getAccessCodeRepo().Update(code)
}

// DeleteCode removes the code and detaches every user bound to it.
// Already granted quota stays with the users.
func (s *AccessCodeService) DeleteCode(id int) error {
	code, err := s.getAccessCodeRepo().FindById(id)
	if database.IsNotFound(err) {
		return common.ErrCodeNotFound
	} else if err != nil {
		return err
	}

	return database.WithTx(func(tx *gorm.DB) error {
		botUsers := repository.NewBotUserRepository(tx)
		users, err := botUsers.FindByAccessCode(code.Code)
		if err != nil {
			return err
		}
		for _, user := range users {
			user.AccessCode = ""
			if err := botUsers.Update(user); err != nil {
				return err
			}
		}
		return repository.NewAccessCodeRepository(tx).Delete(id)
	})
}

func (s *AccessCodeService) CountCodes() (int64, error) {
	return s.getAccessCodeRepo().Count()
}
