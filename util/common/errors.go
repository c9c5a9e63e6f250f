package common

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes carried by ServiceError.
const (
	ErrCodeNotFoundCode     = "NOT_FOUND"
	ErrCodeInvalidInputCode = "INVALID_INPUT"
	ErrCodeUnauthorizedCode = "UNAUTHORIZED"
	ErrCodeInternalCode     = "INTERNAL"
	ErrCodeConflictCode     = "CONFLICT"
	ErrCodeExternalCode     = "EXTERNAL"
)

// ServiceError wraps a service-layer failure with its operation and code.
type ServiceError struct {
	Op      string         // operation, e.g. "BotUserService.ActivateCode"
	Code    string         // error code, e.g. "NOT_FOUND"
	Err     error          // wrapped error
	Context map[string]any // optional context
}

func (e *ServiceError) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString("[")
		sb.WriteString(e.Op)
		sb.WriteString("] ")
	}
	if e.Code != "" {
		sb.WriteString("(")
		sb.WriteString(e.Code)
		sb.WriteString(") ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(op string, err error) *ServiceError {
	return &ServiceError{
		Op:  op,
		Err: err,
	}
}

func (e *ServiceError) WithCode(code string) *ServiceError {
	e.Code = code
	return e
}

func (e *ServiceError) WithContext(key string, val any) *ServiceError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = val
	return e
}

// Wrap wraps err with the operation name, passing nil through.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewServiceError(op, err)
}

// Wrapf wraps err with a formatted message and the operation name.
func Wrapf(op string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return NewServiceError(op, fmt.Errorf("%s: %w", msg, err))
}

// Generic sentinels.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
)

// Access code sentinels.
var (
	ErrCodeNotFound  = errors.New("access code not found or inactive")
	ErrCodeExpired   = errors.New("access code has expired")
	ErrCodeUserLimit = errors.New("access code user limit reached")
	ErrQuotaExceeded = errors.New("character quota exceeded")
)

// Speech generation sentinels.
var (
	ErrVoiceNotFound = errors.New("voice not found")
	ErrTextTooLong   = errors.New("text exceeds maximum length")
	ErrSpeechAPI     = errors.New("speech API request failed")
	ErrAudioConvert  = errors.New("audio conversion failed")
)

// Telegram bot sentinels.
var (
	ErrTelegramNotRunning    = errors.New("telegram bot is not running")
	ErrTelegramInvalidToken  = errors.New("invalid telegram bot token")
	ErrTelegramInvalidChatID = errors.New("invalid telegram chat id")
	ErrTelegramNoAdmins      = errors.New("no telegram admins configured")
	ErrBotUserNotFound       = errors.New("bot user not found")
)

// Panel authentication sentinels.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTwoFactorRequired  = errors.New("two-factor code required")
	ErrTwoFactorInvalid   = errors.New("invalid two-factor code")
)

// WrapError adds context to an error message.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return NewErrorf("%s: %v", context, err)
}

// IsNotFoundError reports whether err belongs to the not-found family.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrVoiceNotFound) ||
		errors.Is(err, ErrBotUserNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCodeNotFound)
}
