package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

func (t *Tgbot) OnReceive() {
	params := telego.GetUpdatesParams{
		Timeout: 10,
	}

	updates, _ := bot.UpdatesViaLongPolling(context.Background(), &params)

	botHandler, _ = th.NewBotHandler(bot, updates)

	botHandler.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		t.answerCommand(&message, message.Chat.ID, checkAdmin(message.From.ID))
		return nil
	}, th.AnyCommand())

	botHandler.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		t.handleText(&message, message.Chat.ID)
		return nil
	}, th.AnyMessageWithText())

	botHandler.HandleCallbackQuery(func(ctx *th.Context, query telego.CallbackQuery) error {
		t.answerCallback(&query, checkAdmin(query.From.ID))
		return nil
	}, th.AnyCallbackQuery())

	_ = botHandler.Start()
}

func (t *Tgbot) answerCommand(message *telego.Message, chatId int64, isAdmin bool) {
	msg := ""

	command, _, commandArgs := tu.ParseCommand(message.Text)

	handleUnknownCommand := func() {
		msg += "❓ Unknown command. Send /help to see what I can do."
	}

	switch command {
	case "start":
		user, err := t.botUserService.Register(message.From.ID, message.From.Username, message.From.FirstName, message.From.LastName)
		if err != nil {
			logger.Warning("register bot user failed:", err)
			msg += "⚠️ Something went wrong, please try again."
			break
		}
		// deep link payload: /start TTS-XXXXXXXXXXXXXXX
		if len(commandArgs) > 0 && strings.HasPrefix(strings.ToUpper(commandArgs[0]), config.AccessCodePrefix) {
			msg += t.activateCode(message.From.ID, strings.ToUpper(strings.TrimSpace(commandArgs[0])))
			break
		}
		msg += fmt.Sprintf("👋 Hello, %s!\r\n\r\n", message.From.FirstName)
		msg += "I turn text into voice messages.\r\n\r\n"
		if user.QuotaRemaining() > 0 {
			msg += fmt.Sprintf("You have <b>%d</b> characters left. Just send me any text.", user.QuotaRemaining())
		} else {
			msg += "To get started, activate an access code:\r\n<code>/mycode TTS-XXXXXXXXXXXXXXX</code>"
		}
	case "help":
		msg += "🎙 <b>What I can do</b>\r\n\r\n"
		msg += "Send me any text and I reply with a voice note.\r\n\r\n"
		msg += "/mycode &lt;CODE&gt; - activate an access code\r\n"
		msg += "/tts &lt;text&gt; - convert text to speech\r\n"
		msg += "/myquota - remaining characters\r\n"
		msg += "/voices - pick a voice\r\n"
		msg += "/settings - speech settings\r\n"
		msg += "/history - recent generations\r\n"
		msg += "/id - your Telegram ID"
	case "id":
		msg += fmt.Sprintf("🆔 Your ID: <code>%d</code>", message.From.ID)
	case "mycode":
		if len(commandArgs) == 0 {
			msg += "Usage: <code>/mycode TTS-XXXXXXXXXXXXXXX</code>"
			break
		}
		msg += t.activateCode(message.From.ID, strings.ToUpper(strings.TrimSpace(commandArgs[0])))
	case "tts":
		if len(commandArgs) == 0 {
			msg += "Usage: <code>/tts your text here</code>"
			break
		}
		t.generateVoice(chatId, message.From.ID, strings.Join(commandArgs, " "))
	case "myquota":
		msg += t.quotaMessage(message.From.ID)
	case "voices":
		t.sendVoiceOptions(chatId, message.From.ID)
	case "settings":
		t.sendSettingsMenu(chatId, message.From.ID)
	case "history":
		msg += t.historyMessage(message.From.ID)
	case "status":
		if !isAdmin {
			handleUnknownCommand()
			break
		}
		msg += t.statusMessage()
	case "addcode":
		if !isAdmin {
			handleUnknownCommand()
			break
		}
		msg += t.addCode(chatId, commandArgs)
	case "codes":
		if !isAdmin {
			handleUnknownCommand()
			break
		}
		msg += t.listCodes()
	case "disablecode":
		if !isAdmin || len(commandArgs) == 0 {
			handleUnknownCommand()
			break
		}
		msg += t.disableCode(commandArgs[0])
	case "stats":
		if !isAdmin {
			handleUnknownCommand()
			break
		}
		msg += t.statsMessage()
	case "users":
		if !isAdmin {
			handleUnknownCommand()
			break
		}
		msg += t.listUsers()
	default:
		handleUnknownCommand()
	}

	if msg != "" {
		t.SendMsgToTgbot(chatId, msg)
	}
}

// handleText treats any plain message as text to speak.
func (t *Tgbot) handleText(message *telego.Message, chatId int64) {
	if strings.HasPrefix(message.Text, "/") {
		return
	}
	t.generateVoice(chatId, message.From.ID, message.Text)
}

func (t *Tgbot) generateVoice(chatId int64, telegramId int64, text string) {
	user, err := t.botUserService.GetByTelegramId(telegramId)
	if err != nil {
		t.SendMsgToTgbot(chatId, "Send /start first so I know who you are.")
		return
	}

	t.sendChatAction(chatId, "record_voice")

	result, err := t.speechService.Generate(context.Background(), user, text)
	if err != nil {
		t.SendMsgToTgbot(chatId, t.describeGenerateError(err, user))
		return
	}

	t.sendChatAction(chatId, "upload_voice")
	if err := t.SendVoiceToTgbot(chatId, result.Audio, ""); err != nil {
		t.SendMsgToTgbot(chatId, "⚠️ Could not deliver the voice note, please try again.")
		return
	}
	logger.Debugf("voice note delivered to %d (%d chars)", telegramId, len([]rune(text)))
}

func (t *Tgbot) describeGenerateError(err error, user interface{ QuotaRemaining() int64 }) string {
	switch {
	case errors.Is(err, common.ErrQuotaExceeded):
		return fmt.Sprintf("🚫 Not enough quota. You have <b>%d</b> characters left.\r\n\r\nActivate another code with /mycode.", user.QuotaRemaining())
	case errors.Is(err, common.ErrTextTooLong):
		return "🚫 That text is too long. The limit is 5000 characters per message."
	case errors.Is(err, common.ErrAudioConvert):
		return "⚠️ Audio conversion failed on the server. The admins have been notified."
	case errors.Is(err, common.ErrSpeechAPI):
		return "⚠️ The speech service is unavailable right now, please try again later."
	default:
		return "⚠️ Generation failed, please try again."
	}
}

func (t *Tgbot) activateCode(telegramId int64, code string) string {
	user, err := t.botUserService.ActivateCode(telegramId, code)
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Code activated!\r\n\r\nYour balance: <b>%d</b> characters.", user.QuotaRemaining())
	case errors.Is(err, common.ErrCodeExpired):
		return "🚫 This code has expired."
	case errors.Is(err, common.ErrCodeUserLimit):
		return "🚫 This code has reached its user limit."
	case errors.Is(err, common.ErrBotUserNotFound):
		return "Send /start first, then activate the code."
	case errors.Is(err, common.ErrCodeNotFound):
		return "🚫 Unknown or disabled code. Check for typos."
	default:
		logger.Warning("activate code failed:", err)
		return "⚠️ Activation failed, please try again."
	}
}

func (t *Tgbot) quotaMessage(telegramId int64) string {
	user, err := t.botUserService.GetByTelegramId(telegramId)
	if err != nil {
		return "Send /start first so I know who you are."
	}
	msg := fmt.Sprintf("📊 <b>Your quota</b>\r\n\r\nRemaining: <b>%d</b> characters\r\nUsed: %d of %d",
		user.QuotaRemaining(), user.QuotaUsed, user.QuotaTotal)
	if user.AccessCode != "" {
		msg += fmt.Sprintf("\r\nActive code: <code>%s</code>", user.AccessCode)
	}
	if stats, err := t.usageService.StatsByUserSince(user.Id, time.Now().AddDate(0, 0, -30)); err == nil && stats.Requests > 0 {
		msg += fmt.Sprintf("\r\n\r\nLast 30 days: %d voice notes, %d characters", stats.Requests, stats.Characters)
	}
	return msg
}

func (t *Tgbot) historyMessage(telegramId int64) string {
	user, err := t.botUserService.GetByTelegramId(telegramId)
	if err != nil {
		return "Send /start first so I know who you are."
	}
	records, err := t.usageService.RecentByUser(user.Id, 10)
	if err != nil {
		logger.Warning("load usage history failed:", err)
		return "⚠️ Could not load your history."
	}
	if len(records) == 0 {
		return "🕳 No generations yet."
	}
	var sb strings.Builder
	sb.WriteString("🗒 <b>Recent generations</b>\r\n")
	for _, r := range records {
		excerpt := r.Text
		if len([]rune(excerpt)) > 40 {
			excerpt = string([]rune(excerpt)[:40]) + "…"
		}
		sb.WriteString(fmt.Sprintf("\r\n%s · %d chars\r\n<i>%s</i>\r\n",
			r.CreatedAt.Format("02 Jan 15:04"), r.CharCount, excerpt))
	}
	return sb.String()
}

func (t *Tgbot) statusMessage() string {
	prev := t.lastStatus
	if prev != nil && prev.T.IsZero() {
		prev = nil
	}
	status := t.serverService.GetStatus(prev)
	if t.lastStatus != nil {
		*t.lastStatus = *status
	}
	var sb strings.Builder
	sb.WriteString("🖥 <b>Server status</b>\r\n\r\n")
	sb.WriteString(fmt.Sprintf("CPU: %.1f%% (%d cores)\r\n", status.Cpu, status.CpuCores))
	sb.WriteString(fmt.Sprintf("Memory: %s / %s\r\n", formatBytes(status.Mem.Current), formatBytes(status.Mem.Total)))
	sb.WriteString(fmt.Sprintf("Disk: %s / %s\r\n", formatBytes(status.Disk.Current), formatBytes(status.Disk.Total)))
	sb.WriteString(fmt.Sprintf("Net: ↑ %s/s ↓ %s/s\r\n", formatBytes(status.NetIO.Up), formatBytes(status.NetIO.Down)))
	sb.WriteString(fmt.Sprintf("ffmpeg: %s", status.Ffmpeg.State))
	if status.Ffmpeg.Version != "" {
		sb.WriteString(" (" + status.Ffmpeg.Version + ")")
	}
	sb.WriteString("\r\n")
	sb.WriteString(fmt.Sprintf("Goroutines: %d, app mem: %s",
		status.AppStats.Goroutines, formatBytes(status.AppStats.Mem)))
	return sb.String()
}

// addCode handles "/addcode [quota] [maxUsers] [expiryDays] [notes...]".
func (t *Tgbot) addCode(chatId int64, args []string) string {
	var quota int64
	var maxUsers, expiryDays int
	var notes string

	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "Usage: <code>/addcode [quota] [maxUsers] [expiryDays] [notes]</code>"
		}
		quota = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return "Usage: <code>/addcode [quota] [maxUsers] [expiryDays] [notes]</code>"
		}
		maxUsers = v
	}
	if len(args) > 2 {
		v, err := strconv.Atoi(args[2])
		if err != nil {
			return "Usage: <code>/addcode [quota] [maxUsers] [expiryDays] [notes]</code>"
		}
		expiryDays = v
	}
	if len(args) > 3 {
		notes = strings.Join(args[3:], " ")
	}

	code, err := t.codeService.CreateCode(quota, maxUsers, expiryDays, "telegram", notes)
	if err != nil {
		logger.Warning("create code failed:", err)
		return "⚠️ Could not create the code."
	}

	expiry := "never"
	if code.ExpiryDate != nil {
		expiry = code.ExpiryDate.Format(time.DateOnly)
	}
	t.sendCodeQR(chatId, code.Code)
	return fmt.Sprintf("✅ New code:\r\n\r\n<code>%s</code>\r\n\r\nQuota: %d chars\r\nMax users: %d\r\nExpires: %s",
		code.Code, code.QuotaTotal, code.MaxUsers, expiry)
}

func (t *Tgbot) listCodes() string {
	codes, err := t.codeService.GetAllCodes()
	if err != nil {
		logger.Warning("list codes failed:", err)
		return "⚠️ Could not load codes."
	}
	if len(codes) == 0 {
		return "🕳 No access codes yet. Create one with /addcode."
	}
	var sb strings.Builder
	sb.WriteString("🎟 <b>Access codes</b>\r\n")
	for _, c := range codes {
		state := "✅"
		if !c.Enable {
			state = "⛔"
		} else if c.IsExpired(time.Now()) {
			state = "⌛"
		}
		sb.WriteString(fmt.Sprintf("\r\n%s <code>%s</code> (id %d)\r\n%d/%d chars · %d/%d users\r\n",
			state, c.Code, c.Id, c.QuotaUsed, c.QuotaTotal, c.CurrentUsers, c.MaxUsers))
	}
	return sb.String()
}

func (t *Tgbot) disableCode(idArg string) string {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return "Usage: <code>/disablecode &lt;id&gt;</code>"
	}
	if err := t.codeService.SetEnable(id, false); err != nil {
		if errors.Is(err, common.ErrCodeNotFound) {
			return "🚫 No code with that id."
		}
		logger.Warning("disable code failed:", err)
		return "⚠️ Could not disable the code."
	}
	return fmt.Sprintf("⛔ Code %d disabled.", id)
}

func (t *Tgbot) statsMessage() string {
	day := time.Now().Add(-24 * time.Hour)
	week := time.Now().AddDate(0, 0, -7)

	dayStats, err := t.usageService.StatsSince(day)
	if err != nil {
		logger.Warning("load stats failed:", err)
		return "⚠️ Could not load statistics."
	}
	weekStats, err := t.usageService.StatsSince(week)
	if err != nil {
		logger.Warning("load stats failed:", err)
		return "⚠️ Could not load statistics."
	}
	userCount, _ := t.botUserService.CountUsers()
	activeCount, _ := t.botUserService.CountActiveSince(week)

	var sb strings.Builder
	sb.WriteString("📈 <b>Usage statistics</b>\r\n\r\n")
	sb.WriteString(fmt.Sprintf("Users: %d (%d active this week)\r\n\r\n", userCount, activeCount))
	sb.WriteString(fmt.Sprintf("Last 24h: %d requests, %d chars\r\n", dayStats.Requests, dayStats.Characters))
	sb.WriteString(fmt.Sprintf("Last 7d: %d requests, %d chars", weekStats.Requests, weekStats.Characters))

	if topVoices, err := t.usageService.TopVoices(30, 5); err == nil && len(topVoices) > 0 {
		sb.WriteString("\r\n\r\nTop voices (30d):")
		for _, v := range topVoices {
			sb.WriteString(fmt.Sprintf("\r\n<code>%s</code> · %d", v.VoiceId, v.Requests))
		}
	}
	return sb.String()
}

func (t *Tgbot) listUsers() string {
	users, err := t.botUserService.GetAllUsers()
	if err != nil {
		logger.Warning("list users failed:", err)
		return "⚠️ Could not load users."
	}
	if len(users) == 0 {
		return "🕳 Nobody has talked to the bot yet."
	}
	var sb strings.Builder
	sb.WriteString("👥 <b>Bot users</b>\r\n")
	for _, u := range users {
		name := u.FirstName
		if u.Username != "" {
			name = "@" + u.Username
		}
		sb.WriteString(fmt.Sprintf("\r\n%s (<code>%d</code>)\r\n%d/%d chars · active %s\r\n",
			name, u.TelegramId, u.QuotaUsed, u.QuotaTotal, u.LastActive.Format("02 Jan 15:04")))
	}
	return sb.String()
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
