package common

import (
	"errors"
	"fmt"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}

// HandleError logs the error and wraps it with the operation name.
func HandleError(op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] %v", op, err)
	return NewServiceError(op, err)
}

// HandleErrorWithCode logs the error and wraps it with an error code.
func HandleErrorWithCode(op string, code string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] (%s) %v", op, code, err)
	return NewServiceError(op, err).WithCode(code)
}

// LogAndReturn logs the error and returns it unwrapped.
func LogAndReturn(op string, err error) error {
	if err == nil {
		return nil
	}
	logger.Warningf("[%s] %v", op, err)
	return err
}

// IgnoreError drops the error after logging a warning.
func IgnoreError(op string, err error) {
	if err != nil {
		logger.Warningf("[%s] ignored error: %v", op, err)
	}
}

// GetErrorCode maps an error to its code, falling back on the sentinel sets.
func GetErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVoiceNotFound),
		errors.Is(err, ErrBotUserNotFound), errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCodeNotFound):
		return ErrCodeNotFoundCode
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTextTooLong):
		return ErrCodeInvalidInputCode
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return ErrCodeUnauthorizedCode
	case errors.Is(err, ErrCodeExpired), errors.Is(err, ErrCodeUserLimit),
		errors.Is(err, ErrQuotaExceeded):
		return ErrCodeConflictCode
	case errors.Is(err, ErrSpeechAPI), errors.Is(err, ErrAudioConvert):
		return ErrCodeExternalCode
	default:
		return ErrCodeInternalCode
	}
}
