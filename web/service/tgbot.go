package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"
	"github.com/Shaanadrian1/AuthAudioBot/web/global"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/skip2/go-qrcode"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"
)

// TelegramService decouples jobs and the server service from the concrete
// bot implementation.
type TelegramService interface {
	SendMessage(msg string) error
	IsRunning() bool
}

var (
	bot         *telego.Bot
	botHandler  *th.BotHandler
	botUsername string
	adminIds    []int64
	isRunning   bool
	hashStorage *global.HashStorage
)

type Tgbot struct {
	settingService *SettingService
	botUserService *BotUserService
	codeService    *AccessCodeService
	voiceService   *VoiceService
	usageService   *UsageService
	speechService  *SpeechService
	serverService  *ServerService
	lastStatus     *Status
}

func NewTgBot(
	settingService *SettingService,
	botUserService *BotUserService,
	codeService *AccessCodeService,
	voiceService *VoiceService,
	usageService *UsageService,
	speechService *SpeechService,
	serverService *ServerService,
	lastStatus *Status,
) *Tgbot {
	return &Tgbot{
		settingService: settingService,
		botUserService: botUserService,
		codeService:    codeService,
		voiceService:   voiceService,
		usageService:   usageService,
		speechService:  speechService,
		serverService:  serverService,
		lastStatus:     lastStatus,
	}
}

func (t *Tgbot) Start() error {
	hashStorage = global.NewHashStorage(config.CallbackHashTTL)

	tgBotToken, err := t.settingService.GetTgBotToken()
	if err != nil || tgBotToken == "" {
		logger.Warning("failed to get telegram bot token:", err)
		return common.Wrap("Tgbot.Start", common.ErrTelegramInvalidToken)
	}
	if len(tgBotToken) < 10 || !strings.Contains(tgBotToken, ":") {
		return common.Wrapf("Tgbot.Start", common.ErrTelegramInvalidToken, "bad token format")
	}

	adminIds, err = t.settingService.GetTgBotAdminIds()
	if err != nil {
		return err
	}

	tgBotProxy, err := t.settingService.GetTgBotProxy()
	if err != nil {
		logger.Warning("failed to get telegram bot proxy:", err)
	}

	bot, err = t.NewBot(tgBotToken, tgBotProxy)
	if err != nil {
		logger.Error("failed to initialize telegram bot API:", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	botInfo, err := bot.GetMe(ctx)
	if err != nil {
		logger.Error("failed to get bot information:", err)
		return common.Wrapf("Tgbot.Start", common.ErrTelegramInvalidToken, "GetMe: %v", err)
	}
	logger.Infof("connected to telegram bot: @%s (ID: %d)", botInfo.Username, botInfo.ID)
	botUsername = botInfo.Username

	err = bot.SetMyCommands(context.Background(), &telego.SetMyCommandsParams{
		Commands: []telego.BotCommand{
			{Command: "start", Description: "Register and show the welcome message"},
			{Command: "help", Description: "How to use the bot"},
			{Command: "tts", Description: "Convert text to a voice note"},
			{Command: "mycode", Description: "Activate an access code"},
			{Command: "myquota", Description: "Show your remaining character quota"},
			{Command: "voices", Description: "Pick a voice"},
			{Command: "settings", Description: "Speech settings"},
			{Command: "history", Description: "Your recent generations"},
			{Command: "id", Description: "Show your Telegram ID"},
		},
	})
	if err != nil {
		logger.Warning("failed to set bot commands:", err)
	}

	if !isRunning {
		logger.Info("telegram bot receiver started")
		go t.OnReceive()
		isRunning = true
	}

	return nil
}

func (t *Tgbot) NewBot(token string, proxyUrl string) (*telego.Bot, error) {
	if proxyUrl == "" {
		return telego.NewBot(token)
	}

	if !strings.HasPrefix(proxyUrl, "socks5://") {
		logger.Warning("invalid socks5 URL, using default")
		return telego.NewBot(token)
	}

	if _, err := url.Parse(proxyUrl); err != nil {
		logger.Warningf("can't parse proxy URL, using default instance for tgbot: %v", err)
		return telego.NewBot(token)
	}

	return telego.NewBot(token, telego.WithFastHTTPClient(&fasthttp.Client{
		Dial: fasthttpproxy.FasthttpSocksDialer(proxyUrl),
	}))
}

func (t *Tgbot) Stop() {
	if botHandler != nil {
		_ = botHandler.Stop()
	}
	logger.Info("stop telegram receiver ...")
	isRunning = false
	adminIds = nil
	if hashStorage != nil {
		hashStorage.Reset()
	}
}

func (t *Tgbot) IsRunning() bool {
	return isRunning
}

func checkAdmin(tgId int64) bool {
	return slices.Contains(adminIds, tgId)
}

func (t *Tgbot) encodeQuery(query string) string {
	// callback data is limited to 64 bytes
	if len(query) <= 64 {
		return query
	}
	return hashStorage.Put(query)
}

func (t *Tgbot) decodeQuery(query string) (string, error) {
	if !hashStorage.IsHash(query) {
		return query, nil
	}

	decoded, exists := hashStorage.Get(query)
	if !exists {
		return "", common.NewError("hash not found in storage!")
	}

	return decoded, nil
}

func (t *Tgbot) GetHashStorage() *global.HashStorage {
	return hashStorage
}

func (t *Tgbot) SendMsgToTgbot(chatId int64, msg string, replyMarkup ...telego.ReplyMarkup) {
	if !isRunning {
		return
	}

	if msg == "" {
		logger.Info("[tgbot] message is empty!")
		return
	}

	var allMessages []string
	limit := config.TelegramMessageLimit

	// paging message if it is big
	if len(msg) > limit {
		messages := strings.Split(msg, "\r\n\r\n")
		lastIndex := -1

		for _, message := range messages {
			if (len(allMessages) == 0) || (len(allMessages[lastIndex])+len(message) > limit) {
				allMessages = append(allMessages, message)
				lastIndex++
			} else {
				allMessages[lastIndex] += "\r\n\r\n" + message
			}
		}
		if strings.TrimSpace(allMessages[len(allMessages)-1]) == "" {
			allMessages = allMessages[:len(allMessages)-1]
		}
	} else {
		allMessages = append(allMessages, msg)
	}
	for n, message := range allMessages {
		params := telego.SendMessageParams{
			ChatID:    tu.ID(chatId),
			Text:      message,
			ParseMode: "HTML",
		}
		// only add replyMarkup to last message
		if len(replyMarkup) > 0 && n == (len(allMessages)-1) {
			params.ReplyMarkup = replyMarkup[0]
		}
		if _, err := bot.SendMessage(context.Background(), &params); err != nil {
			logger.Warning("error sending telegram message:", err)
		}
		time.Sleep(config.TelegramMessageDelay)
	}
}

func (t *Tgbot) SendMsgToTgbotAdmins(msg string, replyMarkup ...telego.ReplyMarkup) {
	if len(replyMarkup) > 0 {
		for _, adminId := range adminIds {
			t.SendMsgToTgbot(adminId, msg, replyMarkup[0])
		}
	} else {
		for _, adminId := range adminIds {
			t.SendMsgToTgbot(adminId, msg)
		}
	}
}

// UserLoginNotify tells the admins about a panel login attempt.
// status 1 means success, anything else a failed attempt.
func (t *Tgbot) UserLoginNotify(username string, ip string, time string, status int) {
	if !t.IsRunning() || username == "" || ip == "" {
		return
	}
	var msg string
	if status == 1 {
		msg = fmt.Sprintf("✅ Panel login success\r\n\r\nUser: %s\r\nIP: %s\r\nTime: %s", username, ip, time)
	} else {
		msg = fmt.Sprintf("❗ Panel login failed\r\n\r\nUser: %s\r\nIP: %s\r\nTime: %s", username, ip, time)
	}
	t.SendMsgToTgbotAdmins(msg)
}

// SendMessage implements TelegramService by relaying to all admins.
func (t *Tgbot) SendMessage(msg string) error {
	if !t.IsRunning() {
		return common.ErrTelegramNotRunning
	}
	if len(adminIds) == 0 {
		return common.ErrTelegramNoAdmins
	}
	t.SendMsgToTgbotAdmins(msg)
	return nil
}

// SendVoiceToTgbot uploads an OGG/Opus voice note to the chat.
func (t *Tgbot) SendVoiceToTgbot(chatId int64, audio []byte, caption string) error {
	if !isRunning {
		return common.ErrTelegramNotRunning
	}
	params := &telego.SendVoiceParams{
		ChatID:  tu.ID(chatId),
		Voice:   tu.FileFromBytes(audio, "voice.ogg"),
		Caption: caption,
	}
	if _, err := bot.SendVoice(context.Background(), params); err != nil {
		logger.Warning("error sending voice message:", err)
		return err
	}
	return nil
}

// sendCodeQR delivers the activation deep link of a fresh code as a QR
// photo, falling back to silence when encoding fails.
func (t *Tgbot) sendCodeQR(chatId int64, code string) {
	if !isRunning || botUsername == "" {
		return
	}
	link := fmt.Sprintf("https://t.me/%s?start=%s", botUsername, code)
	qrCodeBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		logger.Warningf("encode code QR failed: %v", err)
		return
	}
	photoParams := tu.Photo(
		tu.ID(chatId),
		tu.FileFromBytes(qrCodeBytes, "code.png"),
	).WithCaption(link)
	if _, err := bot.SendPhoto(context.Background(), photoParams); err != nil {
		logger.Warningf("send code QR to %d failed: %v", chatId, err)
	}
}

func (t *Tgbot) sendChatAction(chatId int64, action string) {
	if !isRunning {
		return
	}
	err := bot.SendChatAction(context.Background(), &telego.SendChatActionParams{
		ChatID: tu.ID(chatId),
		Action: action,
	})
	if err != nil {
		logger.Debugf("send chat action failed: %v", err)
	}
}

func (t *Tgbot) sendLongMessage(chatId int64, content string) {
	const maxLength = 4096 - 20

	if len(content) <= maxLength {
		t.SendMsgToTgbot(chatId, fmt.Sprintf("<pre>%s</pre>", content))
		return
	}

	lines := strings.Split(content, "\n")
	var buffer strings.Builder

	for _, line := range lines {
		if buffer.Len() > 0 && buffer.Len()+len(line)+1 > maxLength {
			t.SendMsgToTgbot(chatId, fmt.Sprintf("<pre>%s</pre>", buffer.String()))
			buffer.Reset()
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
	}

	if buffer.Len() > 0 {
		t.SendMsgToTgbot(chatId, fmt.Sprintf("<pre>%s</pre>", buffer.String()))
	}
}
