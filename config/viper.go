package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// initStaticConfig wires up viper for the static (file/env) part of the
// configuration. Runtime settings live in the database behind SettingService.
func initStaticConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/audiobot")

	viper.SetEnvPrefix("AUDIOBOT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setStaticDefaults()

	// The config file is optional, defaults apply when it is absent.
	_ = viper.ReadInConfig()
}

// RefreshEnvConfig re-reads the environment into viper. Tests use this after
// mutating AUDIOBOT_* variables.
func RefreshEnvConfig() {
	viper.SetEnvPrefix("AUDIOBOT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.Set("app.debug", os.Getenv("AUDIOBOT_DEBUG") == "true")
	viper.Set("app.log_level", os.Getenv("AUDIOBOT_LOG_LEVEL"))
	viper.Set("paths.data_folder", os.Getenv("AUDIOBOT_DATA_FOLDER"))
	viper.Set("paths.log_folder", os.Getenv("AUDIOBOT_LOG_FOLDER"))
	viper.Set("paths.upload_folder", os.Getenv("AUDIOBOT_UPLOAD_FOLDER"))
}

func setStaticDefaults() {
	viper.SetDefault("app.name", "audiobot")
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("paths.data_folder", "data")
	viper.SetDefault("paths.log_folder", "logs")
	viper.SetDefault("paths.upload_folder", "uploads")
}
