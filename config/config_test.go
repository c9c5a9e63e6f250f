package config

import (
	"os"
	"testing"
)

func TestGetNameAndVersion(t *testing.T) {
	if GetName() != "audiobot" {
		t.Errorf("unexpected name: %q", GetName())
	}
	if GetVersion() == "" {
		t.Error("version should not be empty")
	}
}

func TestPathDefaults(t *testing.T) {
	os.Unsetenv("AUDIOBOT_DATA_FOLDER")
	os.Unsetenv("AUDIOBOT_LOG_FOLDER")
	os.Unsetenv("AUDIOBOT_UPLOAD_FOLDER")
	RefreshEnvConfig()

	if got := GetDataFolderPath(); got != "data" {
		t.Errorf("expected default data folder, got %q", got)
	}
	if got := GetLogFolderPath(); got != "logs" {
		t.Errorf("expected default log folder, got %q", got)
	}
	if got := GetUploadFolderPath(); got != "uploads" {
		t.Errorf("expected default upload folder, got %q", got)
	}
	if got := GetDBPath(); got != "data/audiobot.db" {
		t.Errorf("unexpected db path: %q", got)
	}
}

func TestPathEnvOverride(t *testing.T) {
	os.Setenv("AUDIOBOT_DATA_FOLDER", "/var/lib/audiobot")
	defer os.Unsetenv("AUDIOBOT_DATA_FOLDER")
	RefreshEnvConfig()
	defer RefreshEnvConfig()

	if got := GetDataFolderPath(); got != "/var/lib/audiobot" {
		t.Errorf("expected env override, got %q", got)
	}
}

func TestLogLevel(t *testing.T) {
	os.Setenv("AUDIOBOT_DEBUG", "true")
	RefreshEnvConfig()
	if GetLogLevel() != Debug {
		t.Error("debug mode should force debug log level")
	}

	os.Setenv("AUDIOBOT_DEBUG", "false")
	os.Setenv("AUDIOBOT_LOG_LEVEL", "warning")
	RefreshEnvConfig()
	if GetLogLevel() != Warning {
		t.Errorf("expected warning, got %v", GetLogLevel())
	}

	os.Unsetenv("AUDIOBOT_DEBUG")
	os.Unsetenv("AUDIOBOT_LOG_LEVEL")
	RefreshEnvConfig()
}
