package config

import "time"

// Speech generation limits.
const (
	// MaxTTSTextLength is the longest text a single /tts request may carry.
	MaxTTSTextLength = 5000

	// UsageExcerptLength is how much of the source text is kept in history.
	UsageExcerptLength = 200

	// SpeechRequestTimeout bounds one round trip to the speech API.
	SpeechRequestTimeout = 60 * time.Second

	// ConvertTimeout bounds one ffmpeg conversion run.
	ConvertTimeout = 30 * time.Second
)

// Telegram bot constants.
const (
	// TelegramMessageDelay is the pause between consecutive bot messages.
	TelegramMessageDelay = 500 * time.Millisecond

	// TelegramMessageLimit is the paging threshold for long messages.
	TelegramMessageLimit = 2000

	// CallbackHashTTL is how long encoded callback payloads stay cached.
	CallbackHashTTL = 20 * time.Minute
)

// Access code constants.
const (
	// AccessCodePrefix starts every generated access code.
	AccessCodePrefix = "TTS-"

	// AccessCodeRandomLength is the random part after the prefix.
	AccessCodeRandomLength = 15

	// DefaultCodeQuota is the character quota of a freshly created code.
	DefaultCodeQuota = 50000

	// DefaultCodeExpiryDays is the default validity window of a code.
	DefaultCodeExpiryDays = 30
)

// Maintenance constants.
const (
	// UsageRetentionDays is how long usage records are kept.
	UsageRetentionDays = 90

	// UsagePurgeInterval is how often the purge job runs.
	UsagePurgeInterval = 24 * time.Hour
)
