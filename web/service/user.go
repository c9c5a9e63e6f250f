package service

import (
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/crypto"

	"github.com/xlzd/gotp"
)

type UserService struct {
	settingService *SettingService
	userRepo       repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository, settingService *SettingService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		settingService: settingService,
	}
}

func (s *UserService) getUserRepo() repository.UserRepository {
	if s.userRepo == nil {
		s.userRepo = repository.NewUserRepository(database.GetDB())
	}
	return s.userRepo
}

func (s *UserService) getSettingService() *SettingService {
	if s.settingService == nil {
		s.settingService = &SettingService{}
	}
	return s.settingService
}

func (s *UserService) GetFirstUser() (*model.User, error) {
	return s.getUserRepo().FindFirst()
}

// CheckUser returns the user when the credentials (and the TOTP code, when
// two factor auth is enabled) are valid, nil otherwise.
func (s *UserService) CheckUser(username string, password string, twoFactorCode string) *model.User {
	user, err := s.getUserRepo().FindByUsername(username)
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	twoFactorEnable, err := s.getSettingService().GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two factor err:", err)
		return nil
	}

	if twoFactorEnable {
		twoFactorToken, err := s.getSettingService().GetTwoFactorToken()
		if err != nil {
			logger.Warning("check two factor token err:", err)
			return nil
		}

		if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
			return nil
		}
	}

	return user
}

func (s *UserService) UpdateUser(id int, username string, password string) error {
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	twoFactorEnable, err := s.getSettingService().GetTwoFactorEnable()
	if err != nil {
		return err
	}

	// rotating credentials invalidates the old TOTP binding
	if twoFactorEnable {
		_ = s.getSettingService().SetTwoFactorEnable(false)
		_ = s.getSettingService().SetTwoFactorToken("")
	}

	return s.getUserRepo().GetDB().Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"username": username, "password": hashedPassword}).Error
}

// EnableTwoFactor generates a new TOTP secret, stores it and returns the
// provisioning URI for the authenticator app.
func (s *UserService) EnableTwoFactor(username string) (string, error) {
	secret := gotp.RandomSecret(32)
	if err := s.getSettingService().SetTwoFactorToken(secret); err != nil {
		return "", err
	}
	if err := s.getSettingService().SetTwoFactorEnable(true); err != nil {
		return "", err
	}
	return gotp.NewDefaultTOTP(secret).ProvisioningUri(username, "audiobot"), nil
}

func (s *UserService) DisableTwoFactor() error {
	if err := s.getSettingService().SetTwoFactorEnable(false); err != nil {
		return err
	}
	return s.getSettingService().SetTwoFactorToken("")
}
