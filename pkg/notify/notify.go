// Package notify is the fire-and-forget event sink the session engine pushes
// human-readable messages into. Delivery is best effort with no ordering
// guarantee relative to state changes.
package notify

import "log"

// Notifier accepts human-readable event strings. Implementations must not
// block the caller and must never return an error.
type Notifier interface {
	Notify(message string)
}

// LogNotifier writes events to the standard logger.
type LogNotifier struct{}

// NewLogNotifier creates a Notifier backed by the standard logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(message string) {
	log.Printf("[event] %s", message)
}

// Discard is a Notifier that drops every event. Useful in tests.
type Discard struct{}

func (Discard) Notify(string) {}
