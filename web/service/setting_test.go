package service

import (
	"testing"
)

func TestSettingService_CRUD(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	port, err := s.GetPort()
	if err != nil {
		t.Fatalf("GetPort failed: %v", err)
	}
	if port != 8000 {
		t.Errorf("expected default port 8000, got %d", port)
	}

	if err := s.SetPort(12345); err != nil {
		t.Fatalf("SetPort failed: %v", err)
	}

	port, err = s.GetPort()
	if err != nil {
		t.Fatalf("GetPort failed: %v", err)
	}
	if port != 12345 {
		t.Errorf("expected port 12345, got %d", port)
	}

	enabled, err := s.GetTgbotEnabled()
	if err != nil {
		t.Fatalf("GetTgbotEnabled failed: %v", err)
	}
	if enabled {
		t.Error("expected tgbot disabled by default")
	}

	if err := s.SetTgbotEnabled(true); err != nil {
		t.Errorf("SetTgbotEnabled failed: %v", err)
	}

	enabled, err = s.GetTgbotEnabled()
	if err != nil {
		t.Fatalf("GetTgbotEnabled failed: %v", err)
	}
	if !enabled {
		t.Error("expected tgbot enabled = true")
	}
}

func TestSettingService_UnknownKey(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	if _, err := s.getString("noSuchKey"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := s.saveSetting("noSuchKey", "x"); err == nil {
		t.Error("expected error saving unknown key")
	}
}

func TestSettingService_BasePathNormalization(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	if err := s.SetBasePath("panel"); err != nil {
		t.Fatalf("SetBasePath failed: %v", err)
	}
	basePath, err := s.GetBasePath()
	if err != nil {
		t.Fatalf("GetBasePath failed: %v", err)
	}
	if basePath != "/panel/" {
		t.Errorf("expected /panel/, got %s", basePath)
	}
}

func TestSettingService_AdminIds(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	if err := s.SetTgBotAdminIds([]int64{111, 222}); err != nil {
		t.Fatalf("SetTgBotAdminIds failed: %v", err)
	}
	ids, err := s.GetTgBotAdminIds()
	if err != nil {
		t.Fatalf("GetTgBotAdminIds failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 111 || ids[1] != 222 {
		t.Errorf("unexpected admin ids: %v", ids)
	}

	if err := s.setString("tgBotAdminIds", "111,abc"); err != nil {
		t.Fatalf("setString failed: %v", err)
	}
	if _, err := s.GetTgBotAdminIds(); err == nil {
		t.Error("expected error for malformed admin id")
	}
}

func TestSettingService_MinimaxEnvFallback(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	t.Setenv("MINIMAX_GROUP_ID", "env-group")
	t.Setenv("MINIMAX_API_KEY", "env-key")

	groupId, err := s.GetMinimaxGroupId()
	if err != nil {
		t.Fatalf("GetMinimaxGroupId failed: %v", err)
	}
	if groupId != "env-group" {
		t.Errorf("expected env fallback, got %q", groupId)
	}

	// a stored value wins over the environment
	if err := s.setString("minimaxGroupId", "db-group"); err != nil {
		t.Fatalf("setString failed: %v", err)
	}
	groupId, err = s.GetMinimaxGroupId()
	if err != nil {
		t.Fatalf("GetMinimaxGroupId failed: %v", err)
	}
	if groupId != "db-group" {
		t.Errorf("expected db value, got %q", groupId)
	}

	apiKey, err := s.GetMinimaxApiKey()
	if err != nil {
		t.Fatalf("GetMinimaxApiKey failed: %v", err)
	}
	if apiKey != "env-key" {
		t.Errorf("expected env api key, got %q", apiKey)
	}
}

func TestSettingService_ResetSettings(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	_ = s.SetPort(54321)
	_ = s.SetTgbotEnabled(true)

	if err := s.ResetSettings(); err != nil {
		t.Fatalf("ResetSettings failed: %v", err)
	}

	port, err := s.GetPort()
	if err != nil {
		t.Fatalf("GetPort failed: %v", err)
	}
	if port != 8000 {
		t.Errorf("expected default port after reset, got %d", port)
	}
}

func TestSettingService_SecretHidden(t *testing.T) {
	setupTestDB(t)
	s := NewSettingService(nil)

	secret, err := s.GetSecret()
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if len(secret) == 0 {
		t.Fatal("expected non-empty secret")
	}

	// the secret persists across service instances
	again, err := NewSettingService(nil).GetSecret()
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if string(secret) != string(again) {
		t.Error("secret must be stable once generated")
	}

	all, err := s.GetAllSetting()
	if err != nil {
		t.Fatalf("GetAllSetting failed: %v", err)
	}
	if _, ok := all["secret"]; ok {
		t.Error("secret must not appear in the bulk getter")
	}
	if _, ok := all["minimaxApiKey"]; ok {
		t.Error("api key must not appear in the bulk getter")
	}
}
