package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies the failure class of an AppError.
type ErrorCode string

const (
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// Profile store errors
	ErrCodeStoreCorrupt ErrorCode = "STORE_CORRUPT"
	ErrCodeStoreIO      ErrorCode = "STORE_IO_ERROR"

	// External collaborator errors
	ErrCodeClassifier  ErrorCode = "CLASSIFIER_ERROR"
	ErrCodeTelegramAPI ErrorCode = "TELEGRAM_API_ERROR"
)

// AppError is a typed application error carrying a code and optional cause.
type AppError struct {
	Code      ErrorCode         `json:"code"`
	Message   string            `json:"message"`
	Context   map[string]string `json:"context,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Cause     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is makes two AppErrors match on code, so sentinels built with New
// work with errors.Is across wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func (e *AppError) IsStoreFailure() bool {
	return e.Code == ErrCodeStoreCorrupt || e.Code == ErrCodeStoreIO
}

// WithContext attaches a key/value pair for logging.
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with formatting.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewStoreCorruptError reports an unparseable persisted database.
func NewStoreCorruptError(path string, err error) *AppError {
	return Wrap(err, ErrCodeStoreCorrupt, "persisted database is unparseable").
		WithContext("path", path)
}

// NewStoreIOError reports a read/write failure against the store.
func NewStoreIOError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStoreIO, fmt.Sprintf("store operation failed: %s", operation))
}

// NewClassifierError reports malformed or absent classifier output.
func NewClassifierError(reason string, err error) *AppError {
	return Wrap(err, ErrCodeClassifier, fmt.Sprintf("classifier failed: %s", reason))
}

// NewTelegramAPIError reports a Telegram Bot API failure.
func NewTelegramAPIError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeTelegramAPI, fmt.Sprintf("telegram API operation failed: %s", operation))
}

// AsAppError casts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
