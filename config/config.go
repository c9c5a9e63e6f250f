package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug   LogLevel = "debug"
	Info    LogLevel = "info"
	Notice  LogLevel = "notice"
	Warning LogLevel = "warning"
	Error   LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := viper.GetString("app.log_level")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return viper.GetBool("app.debug")
}

func GetDataFolderPath() string {
	path := viper.GetString("paths.data_folder")
	if path == "" {
		return "data"
	}
	return path
}

func GetLogFolderPath() string {
	path := viper.GetString("paths.log_folder")
	if path == "" {
		return "logs"
	}
	return path
}

func GetUploadFolderPath() string {
	path := viper.GetString("paths.upload_folder")
	if path == "" {
		return "uploads"
	}
	return path
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDataFolderPath(), GetName())
}

func init() {
	initStaticConfig()
}
