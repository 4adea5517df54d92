// Package notify delivers transient scan outcomes to whoever is watching the
// scanner: the console, a kiosk display, or both.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	KindScanCancelled   Kind = "scan-cancelled"
	KindDecodeFailed    Kind = "decode-failed"
	KindMalformed       Kind = "malformed-qr-content"
	KindSubmitSucceeded Kind = "submission-succeeded"
	KindSubmitFailed    Kind = "submission-failed"
)

// Notification is a short, user-facing message about one scan.
type Notification struct {
	ScanID   string    `json:"scan_id"`
	Kind     Kind      `json:"kind"`
	Category string    `json:"category,omitempty"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

func (n Notification) String() string {
	if n.Category != "" {
		return fmt.Sprintf("[%s] %s: %s", n.Kind, n.Category, n.Message)
	}
	return fmt.Sprintf("[%s] %s", n.Kind, n.Message)
}

// Notifier shows a notification. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Log prints notifications through a standard logger.
type Log struct {
	Logger *log.Logger
}

// Notify writes n as one log line.
func (l Log) Notify(_ context.Context, n Notification) error {
	if l.Logger == nil {
		log.Println(n.String())
		return nil
	}
	l.Logger.Println(n.String())
	return nil
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

// Notify delivers to every notifier and joins their errors.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
