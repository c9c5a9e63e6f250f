package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Shaanadrian1/AuthAudioBot/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempFolders(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	viper.Set("paths.data_folder", filepath.Join(base, "data"))
	viper.Set("paths.log_folder", filepath.Join(base, "logs"))
	viper.Set("paths.upload_folder", filepath.Join(base, "uploads"))
	t.Cleanup(func() {
		viper.Set("paths.data_folder", "")
		viper.Set("paths.log_folder", "")
		viper.Set("paths.upload_folder", "")
	})
	return base
}

func TestEnsureDirectories(t *testing.T) {
	base := useTempFolders(t)

	require.NoError(t, EnsureDirectories())

	for _, dir := range []string{"data", "logs", "uploads"} {
		info, err := os.Stat(filepath.Join(base, dir))
		require.NoError(t, err, "directory %s should exist", dir)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureDirectories_Idempotent(t *testing.T) {
	base := useTempFolders(t)

	require.NoError(t, EnsureDirectories())

	// an existing file inside the folder survives the second run
	marker := filepath.Join(base, "data", "marker")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0o600))

	require.NoError(t, EnsureDirectories())

	content, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
}

func TestInitialize_FailsWhenFfmpegInstallFails(t *testing.T) {
	useTempFolders(t)

	available := false
	fakeProbe(t, &available)
	fakeCommands(t, false, nil)

	app, err := Initialize()
	require.Error(t, err)
	assert.Nil(t, app)
}

func TestInitialize_FullStartup(t *testing.T) {
	useTempFolders(t)

	available := true
	fakeProbe(t, &available)
	calls := fakeCommands(t, true, nil)

	app, err := Initialize()
	require.NoError(t, err)
	require.NotNil(t, app)

	// probe short-circuits, no install happens
	assert.Empty(t, *calls)

	// the service graph is fully wired
	assert.NotNil(t, app.SettingService)
	assert.NotNil(t, app.SpeechService)
	assert.NotNil(t, app.TgBot)
	assert.NotNil(t, app.LogForwarder)

	port, err := app.SettingService.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8000, port)
}

func TestInitDatabase_RejectsCorruptFile(t *testing.T) {
	useTempFolders(t)
	require.NoError(t, EnsureDirectories())

	dbPath := config.GetDBPath()
	require.NoError(t, os.WriteFile(dbPath, []byte("definitely not a database"), 0o600))

	err := InitDatabase()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a sqlite database file")
}

func TestInitializeApp_WiresRepositories(t *testing.T) {
	useTempFolders(t)
	require.NoError(t, EnsureDirectories())
	require.NoError(t, InitDatabase())

	app, err := InitializeApp()
	require.NoError(t, err)

	assert.NotNil(t, app.SettingRepo)
	assert.NotNil(t, app.UserRepo)
	assert.NotNil(t, app.AccessCodeRepo)
	assert.NotNil(t, app.BotUserRepo)
	assert.NotNil(t, app.VoiceRepo)
	assert.NotNil(t, app.UsageRepo)
}
