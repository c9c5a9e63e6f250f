package entity

import (
	"testing"
)

func validSetting() *AllSetting {
	return &AllSetting{
		WebListen:     "",
		WebPort:       8000,
		WebBasePath:   "/",
		SessionMaxAge: 60,
		TimeLocation:  "UTC",
		CodeQuota:     10000,
	}
}

func TestAllSetting_CheckValid_ValidConfig(t *testing.T) {
	s := validSetting()
	if err := s.CheckValid(); err != nil {
		t.Errorf("CheckValid() unexpected error: %v", err)
	}
}

func TestAllSetting_CheckValid_InvalidWebListen(t *testing.T) {
	s := validSetting()
	s.WebListen = "not-an-ip"
	if err := s.CheckValid(); err == nil {
		t.Error("CheckValid() should return error for invalid WebListen IP")
	}
}

func TestAllSetting_CheckValid_InvalidWebPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		s := validSetting()
		s.WebPort = port
		if err := s.CheckValid(); err == nil {
			t.Errorf("CheckValid() should return error for port %d", port)
		}
	}
}

func TestAllSetting_CheckValid_NormalizesBasePath(t *testing.T) {
	s := validSetting()
	s.WebBasePath = "panel"
	if err := s.CheckValid(); err != nil {
		t.Fatalf("CheckValid() unexpected error: %v", err)
	}
	if s.WebBasePath != "/panel/" {
		t.Errorf("WebBasePath = %q, want %q", s.WebBasePath, "/panel/")
	}
}

func TestAllSetting_CheckValid_InvalidTimeLocation(t *testing.T) {
	s := validSetting()
	s.TimeLocation = "Mars/Olympus_Mons"
	if err := s.CheckValid(); err == nil {
		t.Error("CheckValid() should return error for unknown time location")
	}
}

func TestAllSetting_CheckValid_NegativeCodeQuota(t *testing.T) {
	s := validSetting()
	s.CodeQuota = -1
	if err := s.CheckValid(); err == nil {
		t.Error("CheckValid() should return error for negative code quota")
	}
}

func TestAllSetting_CheckValid_InvalidSessionMaxAge(t *testing.T) {
	s := validSetting()
	s.SessionMaxAge = 0
	if err := s.CheckValid(); err == nil {
		t.Error("CheckValid() should return error for zero session max age")
	}
}
