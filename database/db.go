package database

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func GetDBProvider() *gorm.DB {
	return GetDB()
}

const (
	defaultUsername = "admin"
	defaultPassword = "admin"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.BotUser{},
		&model.AccessCode{},
		&model.Voice{},
		&model.UsageRecord{},
		&model.Setting{},
		&model.HistoryOfSeeders{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func initUser() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		logger.Errorf("Error checking if users table is empty: %v", err)
		return err
	}
	if empty {
		hashedPassword, err := crypto.HashPasswordAsBcrypt(defaultPassword)
		if err != nil {
			logger.Errorf("Error hashing default password: %v", err)
			return err
		}

		user := &model.User{
			Username: defaultUsername,
			Password: hashedPassword,
		}
		return db.Create(user).Error
	}
	return nil
}

func runSeeders(isUsersEmpty bool) error {
	var seedersHistory []string
	db.Model(&model.HistoryOfSeeders{}).Pluck("seeder_name", &seedersHistory)

	if !slices.Contains(seedersHistory, "DefaultVoice") {
		if err := seedDefaultVoice(); err != nil {
			logger.Errorf("DefaultVoice seeder failed: %v", err)
			return err
		}
		db.Create(&model.HistoryOfSeeders{SeederName: "DefaultVoice"})
	}

	if !slices.Contains(seedersHistory, "UserPasswordHash") {
		if !isUsersEmpty {
			var users []model.User
			db.Find(&users)

			for _, user := range users {
				if strings.HasPrefix(user.Password, "$2") {
					// already a bcrypt hash
					continue
				}
				hashedPassword, err := crypto.HashPasswordAsBcrypt(user.Password)
				if err != nil {
					logger.Errorf("Error hashing password for user '%s': %v", user.Username, err)
					return err
				}
				db.Model(&user).Update("password", hashedPassword)
			}
		}
		return db.Create(&model.HistoryOfSeeders{SeederName: "UserPasswordHash"}).Error
	}

	return nil
}

// seedDefaultVoice inserts the built-in voice so a fresh install can speak
// before any catalog entry is configured.
func seedDefaultVoice() error {
	var count int64
	if err := db.Model(&model.Voice{}).Where("voice_id = ?", tts.DefaultVoiceID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	voice := &model.Voice{
		Name:     "Moss Audio (Turbo)",
		VoiceId:  tts.DefaultVoiceID,
		Model:    tts.DefaultModel,
		Language: "en",
		Gender:   "male",
		Enable:   true,
	}
	return db.Create(voice).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger gormlogger.Interface

	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger: gormLogger,
	}
	db, err = gorm.Open(sqlite.Open(dbPath), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")

	if err := initModels(); err != nil {
		return err
	}

	isUsersEmpty, err := isTableEmpty("users")
	if err != nil {
		return err
	}

	if err := initUser(); err != nil {
		return err
	}
	return runSeeders(isUsersEmpty)
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			logger.Warning("wal checkpoint on close failed:", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}

// WithTx runs fn inside a transaction, committing on nil and rolling back
// on error.
func WithTx(fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// WithTxResult runs fn inside a transaction and returns its result.
func WithTxResult[T any](fn func(tx *gorm.DB) (T, error)) (T, error) {
	var zero T
	tx := db.Begin()
	if tx.Error != nil {
		return zero, tx.Error
	}

	result, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return zero, err
	}
	return result, tx.Commit().Error
}

// ValidateSQLiteDB opens the provided sqlite DB path with a throw-away
// connection and runs a PRAGMA integrity_check. It does not mutate global
// state.
func ValidateSQLiteDB(dbPath string) error {
	file, err := os.Open(dbPath)
	if err != nil {
		return err
	}
	ok, err := IsSQLiteDB(file)
	_ = file.Close()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("not a sqlite database file: " + dbPath)
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	var res string
	if err := gdb.Raw("PRAGMA integrity_check;").Scan(&res).Error; err != nil {
		return err
	}
	if res != "ok" {
		return errors.New("sqlite integrity check failed: " + res)
	}
	return nil
}
