package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/Shaanadrian1/AuthAudioBot/bootstrap"
	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
)

func runWebServer() {
	app, err := bootstrap.Initialize()
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}

	runtime := bootstrap.NewRuntime(app)

	if err := runtime.StartWebServer(); err != nil {
		log.Fatalf("Error starting web server: %v", err)
	}

	runtime.StartJobs()

	sigCh := make(chan os.Signal, 1)
	setupSignalHandler(sigCh)

	for {
		sig := <-sigCh

		if handleCustomSignal(sig, runtime.FfmpegJob) {
			continue
		}

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting servers...")
			if err := runtime.Restart(); err != nil {
				log.Fatalf("Error restarting: %v", err)
			}

		default:
			runtime.StopAll()
			log.Println("Shutting down servers.")
			return
		}
	}
}

func main() {
	if len(os.Args) < 2 {
		runWebServer()
		return
	}

	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "show version")

	runCmd := flag.NewFlagSet("run", flag.ExitOnError)

	settingCmd := flag.NewFlagSet("setting", flag.ExitOnError)
	var port int
	var username string
	var password string
	var webBasePath string
	var listenIP string
	var tgBotToken string
	var tgBotAdminIds string
	var tgBotRuntime string
	var enableTgBot bool
	var reset bool
	var show bool
	var resetTwoFactor bool
	settingCmd.BoolVar(&reset, "reset", false, "Reset all settings")
	settingCmd.BoolVar(&show, "show", false, "Display current settings")
	settingCmd.IntVar(&port, "port", 0, "Set panel port number")
	settingCmd.StringVar(&username, "username", "", "Set login username")
	settingCmd.StringVar(&password, "password", "", "Set login password")
	settingCmd.StringVar(&webBasePath, "webBasePath", "", "Set base path for the panel")
	settingCmd.StringVar(&listenIP, "listenIP", "", "Set panel listen IP")
	settingCmd.BoolVar(&resetTwoFactor, "resetTwoFactor", false, "Reset two-factor authentication settings")
	settingCmd.StringVar(&tgBotToken, "tgbottoken", "", "Set token for Telegram bot")
	settingCmd.StringVar(&tgBotAdminIds, "tgbotadminids", "", "Set admin chat IDs for Telegram bot, comma separated")
	settingCmd.StringVar(&tgBotRuntime, "tgbotRuntime", "", "Set cron time for Telegram bot digest")
	settingCmd.BoolVar(&enableTgBot, "enabletgbot", false, "Enable the Telegram bot")

	oldUsage := flag.Usage
	flag.Usage = func() {
		oldUsage()
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("    run            run web panel and Telegram bot")
		fmt.Println("    setting        set settings")
	}

	flag.Parse()
	if showVersion {
		fmt.Println(config.GetVersion())
		return
	}

	switch os.Args[1] {
	case "run":
		if err := runCmd.Parse(os.Args[2:]); err != nil {
			fmt.Println(err)
			return
		}
		runWebServer()
	case "setting":
		if err := settingCmd.Parse(os.Args[2:]); err != nil {
			fmt.Println(err)
			return
		}
		if reset {
			resetSetting()
			return
		}
		updateSetting(port, username, password, webBasePath, listenIP)
		if resetTwoFactor {
			disableTwoFactor()
		}
		if tgBotToken != "" || tgBotAdminIds != "" || tgBotRuntime != "" {
			updateTgbotSetting(tgBotToken, tgBotAdminIds, tgBotRuntime)
		}
		if enableTgBot {
			updateTgbotEnableSts(true)
		}
		showSetting(show)
	default:
		fmt.Println("Invalid subcommands")
		flag.Usage()
	}
}
