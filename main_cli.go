package main

import (
	"fmt"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/database"
	"github.com/Shaanadrian1/AuthAudioBot/util/crypto"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"
)

const (
	colReset  = "\033[0m"
	colRed    = "\033[31m"
	colGreen  = "\033[32m"
	colYellow = "\033[33m"
)

func initDBForCLI() error {
	return database.InitDB(config.GetDBPath())
}

func resetSetting() {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	if err := settingService.ResetSettings(); err != nil {
		fmt.Println("Failed to reset settings:", err)
	} else {
		fmt.Println("Settings successfully reset")
	}
}

func updateSetting(port int, username string, password string, webBasePath string, listenIP string) {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}

	if port > 0 {
		if err := settingService.SetPort(port); err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}

	if username != "" || password != "" {
		if username == "" || password == "" {
			fmt.Println("both username and password must be set")
		} else {
			userService := service.UserService{}
			user, err := userService.GetFirstUser()
			if err != nil {
				fmt.Println("get current user failed:", err)
				return
			}
			if err := userService.UpdateUser(user.Id, username, password); err != nil {
				fmt.Println("set username and password failed:", err)
			} else {
				fmt.Println("set username and password success")
			}
		}
	}

	if webBasePath != "" {
		if err := settingService.SetBasePath(webBasePath); err != nil {
			fmt.Println("set base path failed:", err)
		} else {
			fmt.Println("set base path success")
		}
	}

	if listenIP != "" {
		if err := settingService.UpdateSettings(map[string]string{"webListen": listenIP}); err != nil {
			fmt.Println("set listen IP failed:", err)
		} else {
			fmt.Printf("set listen IP %v success\n", listenIP)
		}
	}
}

func disableTwoFactor() {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	userService := service.UserService{}
	if err := userService.DisableTwoFactor(); err != nil {
		fmt.Println("reset two-factor authentication failed:", err)
	} else {
		fmt.Println("two-factor authentication disabled")
	}
}

func updateTgbotSetting(tgBotToken string, tgBotAdminIds string, tgBotRuntime string) {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}

	if tgBotToken != "" {
		if err := settingService.SetTgBotToken(tgBotToken); err != nil {
			fmt.Println("set Telegram bot token failed:", err)
		} else {
			fmt.Println("set Telegram bot token success")
		}
	}

	if tgBotAdminIds != "" {
		if err := settingService.UpdateSettings(map[string]string{"tgBotAdminIds": tgBotAdminIds}); err != nil {
			fmt.Println("set Telegram admin IDs failed:", err)
		} else {
			fmt.Println("set Telegram admin IDs success")
		}
	}

	if tgBotRuntime != "" {
		if err := settingService.UpdateSettings(map[string]string{"tgRunTime": tgBotRuntime}); err != nil {
			fmt.Println("set Telegram bot digest time failed:", err)
		} else {
			fmt.Println("set Telegram bot digest time success")
		}
	}
}

func updateTgbotEnableSts(status bool) {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	current, err := settingService.GetTgbotEnabled()
	if err != nil {
		fmt.Println(err)
		return
	}
	if current != status {
		if err := settingService.SetTgbotEnabled(status); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Telegram bot enabled set to %v\n", status)
	}
}

func showSetting(show bool) {
	if !show {
		return
	}

	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	port, err := settingService.GetPort()
	if err != nil {
		fmt.Println("get current port failed:", err)
	}

	webBasePath, err := settingService.GetBasePath()
	if err != nil {
		fmt.Println("get base path failed:", err)
	}

	tgEnabled, err := settingService.GetTgbotEnabled()
	if err != nil {
		fmt.Println("get Telegram bot state failed:", err)
	}

	userService := service.UserService{}
	userModel, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user failed:", err)
		return
	}

	fmt.Println("")
	fmt.Println(colGreen + "Current panel settings:" + colReset)
	fmt.Println("")
	if userModel.Username == "admin" && crypto.CheckPasswordHash(userModel.Password, "admin") {
		fmt.Println(colRed + "warning: the default admin/admin credentials are still in use" + colReset)
	}
	fmt.Println(colGreen + fmt.Sprintf("port: %d", port) + colReset)
	fmt.Println(colGreen + fmt.Sprintf("base path: %s", webBasePath) + colReset)
	fmt.Println(colGreen + fmt.Sprintf("Telegram bot enabled: %v", tgEnabled) + colReset)
	fmt.Println(colYellow + "for security reasons the username and password are not shown" + colReset)
	fmt.Println("")
}
