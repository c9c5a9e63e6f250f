package database

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Shaanadrian1/AuthAudioBot/database/model"
	"github.com/Shaanadrian1/AuthAudioBot/tts"
	"github.com/Shaanadrian1/AuthAudioBot/util/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitDBCreatesDefaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "audiobot.db")
	require.NoError(t, InitDB(dbPath))
	defer func() { _ = CloseDB() }()

	var admin model.User
	require.NoError(t, GetDB().First(&admin).Error)
	assert.Equal(t, "admin", admin.Username)
	assert.True(t, crypto.CheckPasswordHash(admin.Password, "admin"))

	var voice model.Voice
	require.NoError(t, GetDB().Where("voice_id = ?", tts.DefaultVoiceID).First(&voice).Error)
	assert.Equal(t, tts.DefaultModel, voice.Model)
	assert.True(t, voice.Enable)

	var history []model.HistoryOfSeeders
	require.NoError(t, GetDB().Find(&history).Error)
	assert.Len(t, history, 2)
}

func TestSeedersRunOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audiobot.db")
	require.NoError(t, InitDB(dbPath))

	// Reopening the same file must not duplicate seeded rows.
	require.NoError(t, CloseDB())
	require.NoError(t, InitDB(dbPath))
	defer func() { _ = CloseDB() }()

	var voiceCount int64
	require.NoError(t, GetDB().Model(model.Voice{}).Count(&voiceCount).Error)
	assert.Equal(t, int64(1), voiceCount)

	var userCount int64
	require.NoError(t, GetDB().Model(model.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)
}

func TestWithTx(t *testing.T) {
	require.NoError(t, InitDB(":memory:"))

	err := WithTx(func(tx *gorm.DB) error {
		return tx.Create(&model.Setting{Key: "a", Value: "1"}).Error
	})
	assert.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Setting{Key: "b", Value: "2"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, GetDB().Model(model.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rolled back row must not persist")
}

func TestWithTxResult(t *testing.T) {
	require.NoError(t, InitDB(":memory:"))

	id, err := WithTxResult(func(tx *gorm.DB) (int, error) {
		code := &model.AccessCode{Code: "TTS-TX", QuotaTotal: 100, Enable: true}
		if err := tx.Create(code).Error; err != nil {
			return 0, err
		}
		return code.Id, nil
	})
	assert.NoError(t, err)
	assert.Greater(t, id, 0)
}

func TestIsSQLiteDB(t *testing.T) {
	ok, err := IsSQLiteDB(bytes.NewReader([]byte("SQLite format 3\x00extra")))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsSQLiteDB(bytes.NewReader([]byte("definitely not a database")))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateSQLiteDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audiobot.db")
	require.NoError(t, InitDB(dbPath))
	require.NoError(t, Checkpoint())
	require.NoError(t, CloseDB())

	assert.NoError(t, ValidateSQLiteDB(dbPath))
	assert.Error(t, ValidateSQLiteDB(filepath.Join(t.TempDir(), "missing.db")))
}

func TestIsNotFound(t *testing.T) {
	require.NoError(t, InitDB(":memory:"))

	var setting model.Setting
	err := GetDB().Where("key = ?", "nope").First(&setting).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}
