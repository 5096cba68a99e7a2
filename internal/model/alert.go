package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultAlertDuration is how long a transient alert stays visible.
const DefaultAlertDuration = 4 * time.Second

// AlertLevel is the severity of an alert.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// Alert is a transient user-visible message.
type Alert struct {
	ID        string     `json:"id"`
	Level     AlertLevel `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewAlert creates an alert with a fresh ULID.
func NewAlert(level AlertLevel, message string) Alert {
	now := time.Now()
	return Alert{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
	}
}

// AlertFromError converts a handler error into an alert.
// Validation errors become warnings carrying only their message;
// everything else is a danger alert prefixed with the failed action.
func AlertFromError(prefix string, err error) Alert {
	if IsValidation(err) {
		return NewAlert(AlertWarning, err.Error())
	}
	msg := err.Error()
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	return NewAlert(AlertDanger, msg)
}
