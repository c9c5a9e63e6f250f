package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Shaanadrian1/AuthAudioBot/logger"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

var speedChoices = []float64{0.7, 0.9, 1.0, 1.2, 1.5}

var emotionChoices = []string{"auto", "happy", "sad", "angry", "fearful", "neutral"}

func (t *Tgbot) sendVoiceOptions(chatId int64, telegramId int64) {
	voices, err := t.voiceService.GetEnabledVoices()
	if err != nil {
		logger.Warning("load voices failed:", err)
		t.SendMsgToTgbot(chatId, "⚠️ Could not load the voice list.")
		return
	}
	if len(voices) == 0 {
		t.SendMsgToTgbot(chatId, "🕳 No voices are configured.")
		return
	}

	current := ""
	if user, err := t.botUserService.GetByTelegramId(telegramId); err == nil {
		current = user.VoiceId
	}

	rows := make([][]telego.InlineKeyboardButton, 0, len(voices))
	for _, voice := range voices {
		label := voice.Name
		if voice.Language != "" {
			label += " (" + voice.Language + ")"
		}
		if voice.VoiceId == current {
			label = "✅ " + label
		}
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(label).WithCallbackData(t.encodeQuery("voice "+voice.VoiceId)),
		))
	}

	t.SendMsgToTgbot(chatId, "🎤 Pick a voice:", tu.InlineKeyboard(rows...))
}

func (t *Tgbot) sendSettingsMenu(chatId int64, telegramId int64) {
	user, err := t.botUserService.GetByTelegramId(telegramId)
	if err != nil {
		t.SendMsgToTgbot(chatId, "Send /start first so I know who you are.")
		return
	}

	msg := fmt.Sprintf("⚙️ <b>Speech settings</b>\r\n\r\nSpeed: %.1f\r\nEmotion: %s", user.Speed, user.Emotion)

	speedRow := make([]telego.InlineKeyboardButton, 0, len(speedChoices))
	for _, speed := range speedChoices {
		label := fmt.Sprintf("%.1fx", speed)
		if user.Speed == speed {
			label = "✅ " + label
		}
		speedRow = append(speedRow, tu.InlineKeyboardButton(label).
			WithCallbackData(t.encodeQuery(fmt.Sprintf("speed %.1f", speed))))
	}

	emotionRow := make([]telego.InlineKeyboardButton, 0, len(emotionChoices))
	for _, emotion := range emotionChoices {
		label := emotion
		if user.Emotion == emotion {
			label = "✅ " + label
		}
		emotionRow = append(emotionRow, tu.InlineKeyboardButton(label).
			WithCallbackData(t.encodeQuery("emotion "+emotion)))
	}

	t.SendMsgToTgbot(chatId, msg, tu.InlineKeyboard(
		tu.InlineKeyboardRow(speedRow...),
		tu.InlineKeyboardRow(emotionRow...),
	))
}

func (t *Tgbot) answerCallback(callbackQuery *telego.CallbackQuery, isAdmin bool) {
	chatId := callbackQuery.From.ID

	data, err := t.decodeQuery(callbackQuery.Data)
	if err != nil {
		t.answerCallbackText(callbackQuery.ID, "Button expired, reopen the menu.")
		return
	}

	action, arg, _ := strings.Cut(data, " ")

	switch action {
	case "voice":
		voice, err := t.voiceService.GetVoice(arg)
		if err != nil {
			t.answerCallbackText(callbackQuery.ID, "That voice is gone.")
			return
		}
		if err := t.botUserService.UpdatePreferences(chatId, voice.VoiceId, 0, currentPitch(t, chatId), 0, ""); err != nil {
			logger.Warning("update voice preference failed:", err)
			t.answerCallbackText(callbackQuery.ID, "Could not save, try again.")
			return
		}
		t.answerCallbackText(callbackQuery.ID, "Voice set: "+voice.Name)
	case "speed":
		speed, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			t.answerCallbackText(callbackQuery.ID, "Bad value.")
			return
		}
		if err := t.botUserService.UpdatePreferences(chatId, "", speed, currentPitch(t, chatId), 0, ""); err != nil {
			logger.Warning("update speed preference failed:", err)
			t.answerCallbackText(callbackQuery.ID, "Could not save, try again.")
			return
		}
		t.answerCallbackText(callbackQuery.ID, fmt.Sprintf("Speed set: %.1fx", speed))
	case "emotion":
		if err := t.botUserService.UpdatePreferences(chatId, "", 0, currentPitch(t, chatId), 0, arg); err != nil {
			logger.Warning("update emotion preference failed:", err)
			t.answerCallbackText(callbackQuery.ID, "Could not save, try again.")
			return
		}
		t.answerCallbackText(callbackQuery.ID, "Emotion set: "+arg)
	default:
		t.answerCallbackText(callbackQuery.ID, "Unknown action.")
	}
}

// currentPitch keeps the stored pitch intact across preference updates.
func currentPitch(t *Tgbot, telegramId int64) int {
	if user, err := t.botUserService.GetByTelegramId(telegramId); err == nil {
		return user.Pitch
	}
	return 0
}

func (t *Tgbot) answerCallbackText(queryId string, text string) {
	err := bot.AnswerCallbackQuery(context.Background(), &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryId,
		Text:            text,
	})
	if err != nil {
		logger.Debugf("answer callback failed: %v", err)
	}
}
