package entity

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// Msg is the JSON envelope every panel API response uses.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting mirrors the editable settings the panel exposes. Secret
// values (session secret, two-factor token) are never part of it.
type AllSetting struct {
	WebListen       string `json:"webListen" form:"webListen"`
	WebPort         int    `json:"webPort" form:"webPort"`
	WebBasePath     string `json:"webBasePath" form:"webBasePath"`
	WebDomain       string `json:"webDomain" form:"webDomain"`
	SessionMaxAge   int    `json:"sessionMaxAge" form:"sessionMaxAge"`
	TimeLocation    string `json:"timeLocation" form:"timeLocation"`
	TgBotEnable     bool   `json:"tgBotEnable" form:"tgBotEnable"`
	TgBotToken      string `json:"tgBotToken" form:"tgBotToken"`
	TgBotAdminIds   string `json:"tgBotAdminIds" form:"tgBotAdminIds"`
	TgBotProxy      string `json:"tgBotProxy" form:"tgBotProxy"`
	TgRunTime       string `json:"tgRunTime" form:"tgRunTime"`
	MinimaxGroupId  string `json:"minimaxGroupId" form:"minimaxGroupId"`
	MinimaxApiKey   string `json:"minimaxApiKey" form:"minimaxApiKey"`
	MinimaxBaseUrl  string `json:"minimaxBaseUrl" form:"minimaxBaseUrl"`
	DefaultVoiceId  string `json:"defaultVoiceId" form:"defaultVoiceId"`
	CodeQuota       int    `json:"codeQuota" form:"codeQuota"`
	CodeExpiryDays  int    `json:"codeExpiryDays" form:"codeExpiryDays"`
	TwoFactorEnable bool   `json:"twoFactorEnable" form:"twoFactorEnable"`
}

// CheckValid rejects settings that would leave the panel unreachable.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return fmt.Errorf("web listen is not a valid ip: %v", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > 65535 {
		return fmt.Errorf("web port is not a valid port: %v", s.WebPort)
	}

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}

	if s.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be positive: %v", s.SessionMaxAge)
	}

	if s.CodeQuota < 0 {
		return fmt.Errorf("code quota must not be negative: %v", s.CodeQuota)
	}

	_, err := time.LoadLocation(s.TimeLocation)
	if err != nil {
		return fmt.Errorf("time location is not valid: %v", s.TimeLocation)
	}

	return nil
}
