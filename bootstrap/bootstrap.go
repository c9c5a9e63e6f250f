package bootstrap

import (
	"log"
	"os"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/database/repository"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
)

// App bundles every service instance the application runs on.
type App struct {
	SettingService    *service.SettingService
	UserService       *service.UserService
	AccessCodeService *service.AccessCodeService
	BotUserService    *service.BotUserService
	VoiceService      *service.VoiceService
	UsageService      *service.UsageService
	SpeechService     *service.SpeechService
	ServerService     *service.ServerService
	TgBot             *service.Tgbot
	LogForwarder      *service.LogForwarder
	LastStatus        *service.Status

	// Repositories
	SettingRepo    repository.SettingRepository
	UserRepo       repository.UserRepository
	AccessCodeRepo repository.AccessCodeRepository
	BotUserRepo    repository.BotUserRepository
	VoiceRepo      repository.VoiceRepository
	UsageRepo      repository.UsageRepository
}

func NewApp(
	settingService *service.SettingService,
	userService *service.UserService,
	accessCodeService *service.AccessCodeService,
	botUserService *service.BotUserService,
	voiceService *service.VoiceService,
	usageService *service.UsageService,
	speechService *service.SpeechService,
	serverService *service.ServerService,
	tgBot *service.Tgbot,
	logForwarder *service.LogForwarder,
	status *service.Status,
	settingRepo repository.SettingRepository,
	userRepo repository.UserRepository,
	accessCodeRepo repository.AccessCodeRepository,
	botUserRepo repository.BotUserRepository,
	voiceRepo repository.VoiceRepository,
	usageRepo repository.UsageRepository,
) *App {
	// the status endpoint reports bot state, which wire cannot close
	// into the construction graph
	serverService.SetTelegramService(tgBot)

	return &App{
		SettingService:    settingService,
		UserService:       userService,
		AccessCodeService: accessCodeService,
		BotUserService:    botUserService,
		VoiceService:      voiceService,
		UsageService:      usageService,
		SpeechService:     speechService,
		ServerService:     serverService,
		TgBot:             tgBot,
		LogForwarder:      logForwarder,
		LastStatus:        status,

		SettingRepo:    settingRepo,
		UserRepo:       userRepo,
		AccessCodeRepo: accessCodeRepo,
		BotUserRepo:    botUserRepo,
		VoiceRepo:      voiceRepo,
		UsageRepo:      usageRepo,
	}
}

// EnsureDirectories creates the data, log and upload folders the app
// writes into. Existing folders are left alone.
func EnsureDirectories() error {
	for _, dir := range []string{
		config.GetDataFolderPath(),
		config.GetLogFolderPath(),
		config.GetUploadFolderPath(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// InitDatabase opens the sqlite database and runs migrations.
// InitDatabase refuses to open an existing database file that is corrupt
// or not sqlite at all, so startup fails with a clear error instead of a
// half-broken panel.
func InitDatabase() error {
	dbPath := config.GetDBPath()
	if _, err := os.Stat(dbPath); err == nil {
		if err := database.ValidateSQLiteDB(dbPath); err != nil {
			return err
		}
	}
	return database.InitDB(dbPath)
}

// InitLogger maps the configured log level onto the logging backend.
func InitLogger() {
	var level logging.Level
	switch config.GetLogLevel() {
	case config.Debug:
		level = logging.DEBUG
	case config.Info:
		level = logging.INFO
	case config.Notice:
		level = logging.NOTICE
	case config.Warning:
		level = logging.WARNING
	case config.Error:
		level = logging.ERROR
	default:
		log.Fatalf("Unknown log level: %v", config.GetLogLevel())
	}
	logger.InitLogger(level)
}

// LoadEnv pulls a .env file into the environment when one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// Initialize runs the full startup sequence: environment, folders,
// logging, the ffmpeg dependency, database, then the service graph.
func Initialize() (*App, error) {
	log.Printf("Starting %v %v", config.GetName(), config.GetVersion())

	LoadEnv()

	if err := EnsureDirectories(); err != nil {
		return nil, err
	}

	InitLogger()

	if err := EnsureFfmpeg(); err != nil {
		return nil, err
	}

	if err := InitDatabase(); err != nil {
		return nil, err
	}

	return InitializeApp()
}
