package service

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
	"github.com/Shaanadrian1/AuthAudioBot/util/random"
	"github.com/Shaanadrian1/AuthAudioBot/web/entity"
)

// defaultValueMap backs every setting key. A key absent from the table
// falls back to the value here; unknown keys are rejected.
var defaultValueMap = map[string]string{
	"webListen":       "",
	"webPort":         "8000",
	"webBasePath":     "/",
	"webDomain":       "",
	"sessionMaxAge":   "60",
	"secret":          random.Seq(32),
	"timeLocation":    "Local",
	"tgBotEnable":     "false",
	"tgBotToken":      "",
	"tgBotAdminIds":   "",
	"tgBotProxy":      "",
	"tgRunTime":       "@daily",
	"minimaxGroupId":  "",
	"minimaxApiKey":   "",
	"minimaxBaseUrl":  "",
	"defaultVoiceId":  "",
	"codeQuota":       strconv.Itoa(config.DefaultCodeQuota),
	"codeExpiryDays":  strconv.Itoa(config.DefaultCodeExpiryDays),
	"twoFactorEnable": "false",
	"twoFactorToken":  "",
}

type SettingService struct {
	settingRepo repository.SettingRepository
}

func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

func (s *SettingService) getSettingRepo() repository.SettingRepository {
	if s.settingRepo == nil {
		s.settingRepo = repository.NewSettingRepository(database.GetDB())
	}
	return s.settingRepo
}

func (s *SettingService) GetAllSetting() (map[string]string, error) {
	settings, err := s.getSettingRepo().FindAll()
	if err != nil {
		return nil, err
	}
	all := make(map[string]string, len(defaultValueMap))
	for k, v := range defaultValueMap {
		all[k] = v
	}
	for _, setting := range settings {
		if _, ok := defaultValueMap[setting.Key]; ok {
			all[setting.Key] = setting.Value
		}
	}
	// never expose secrets through the bulk getter
	delete(all, "secret")
	delete(all, "minimaxApiKey")
	delete(all, "twoFactorToken")
	return all, nil
}

func (s *SettingService) ResetSettings() error {
	return s.getSettingRepo().DeleteAll()
}

func (s *SettingService) getSetting(key string) (string, error) {
	return s.getString(key)
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSettingRepo().FindByKey(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("unknown setting key: %v", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	if _, ok := defaultValueMap[key]; !ok {
		return common.NewErrorf("unknown setting key: %v", key)
	}
	setting, err := s.getSettingRepo().FindByKey(key)
	if database.IsNotFound(err) {
		return s.getSettingRepo().Create(&model.Setting{
			Key:   key,
			Value: value,
		})
	} else if err != nil {
		return err
	}
	setting.Value = value
	return s.getSettingRepo().Update(setting)
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) SetBasePath(basePath string) error {
	return s.setString("webBasePath", basePath)
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

// GetSecret returns the session signing secret, persisting the generated
// default on first use so sessions survive restarts.
func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return nil, err
	}
	if _, err := s.getSettingRepo().FindByKey("secret"); database.IsNotFound(err) {
		if saveErr := s.saveSetting("secret", secret); saveErr != nil {
			logger.Warning("save secret failed:", saveErr)
		}
	}
	return []byte(secret), nil
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		logger.Errorf("invalid time location: %v, using default: %v", l, defaultLocation)
		return time.LoadLocation(defaultLocation)
	}
	return location, nil
}

func (s *SettingService) GetTgbotEnabled() (bool, error) {
	return s.getBool("tgBotEnable")
}

func (s *SettingService) SetTgbotEnabled(value bool) error {
	return s.setBool("tgBotEnable", value)
}

func (s *SettingService) GetTgBotToken() (string, error) {
	token, err := s.getString("tgBotToken")
	if err != nil {
		return "", err
	}
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	return token, nil
}

func (s *SettingService) SetTgBotToken(token string) error {
	return s.setString("tgBotToken", token)
}

// GetTgBotAdminIds parses the comma separated admin list into chat ids.
func (s *SettingService) GetTgBotAdminIds() ([]int64, error) {
	value, err := s.getString("tgBotAdminIds")
	if err != nil {
		return nil, err
	}
	if value == "" {
		value = os.Getenv("TELEGRAM_ADMIN_IDS")
	}
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, common.Wrapf("SettingService.GetTgBotAdminIds", common.ErrTelegramInvalidChatID, "%q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *SettingService) SetTgBotAdminIds(ids []int64) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return s.setString("tgBotAdminIds", strings.Join(parts, ","))
}

func (s *SettingService) GetTgBotProxy() (string, error) {
	return s.getString("tgBotProxy")
}

func (s *SettingService) GetTgBotRuntime() (string, error) {
	return s.getString("tgRunTime")
}

// GetMinimaxGroupId falls back to the environment so the API credentials
// can live outside the database.
func (s *SettingService) GetMinimaxGroupId() (string, error) {
	value, err := s.getString("minimaxGroupId")
	if err != nil {
		return "", err
	}
	if value == "" {
		value = os.Getenv("MINIMAX_GROUP_ID")
	}
	return value, nil
}

func (s *SettingService) GetMinimaxApiKey() (string, error) {
	value, err := s.getString("minimaxApiKey")
	if err != nil {
		return "", err
	}
	if value == "" {
		value = os.Getenv("MINIMAX_API_KEY")
	}
	return value, nil
}

func (s *SettingService) GetMinimaxBaseUrl() (string, error) {
	value, err := s.getString("minimaxBaseUrl")
	if err != nil {
		return "", err
	}
	if value == "" {
		value = os.Getenv("MINIMAX_BASE_URL")
	}
	return value, nil
}

func (s *SettingService) GetDefaultVoiceId() (string, error) {
	return s.getString("defaultVoiceId")
}

func (s *SettingService) SetDefaultVoiceId(voiceId string) error {
	return s.setString("defaultVoiceId", voiceId)
}

func (s *SettingService) GetCodeQuota() (int, error) {
	return s.getInt("codeQuota")
}

func (s *SettingService) SetCodeQuota(quota int) error {
	return s.setInt("codeQuota", quota)
}

func (s *SettingService) GetCodeExpiryDays() (int, error) {
	return s.getInt("codeExpiryDays")
}

func (s *SettingService) SetCodeExpiryDays(days int) error {
	return s.setInt("codeExpiryDays", days)
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(value bool) error {
	return s.setBool("twoFactorEnable", value)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(token string) error {
	return s.setString("twoFactorToken", token)
}

// UpdateAllSetting persists an AllSetting snapshot submitted by the
// panel. An empty minimaxApiKey keeps the stored key, since the panel
// never sees the real one.
func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}
	v := reflect.ValueOf(allSetting).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("json")
		value := fmt.Sprint(v.Field(i).Interface())
		if key == "minimaxApiKey" && value == "" {
			continue
		}
		if err := s.saveSetting(key, value); err != nil {
			return common.NewErrorf("failed to save setting %v: %v", key, err)
		}
	}
	return nil
}

func (s *SettingService) UpdateSettings(values map[string]string) error {
	for key := range values {
		if _, ok := defaultValueMap[key]; !ok {
			return common.NewErrorf("unknown setting key: %v", key)
		}
	}
	for key, value := range values {
		if err := s.saveSetting(key, value); err != nil {
			return err
		}
	}
	return nil
}
