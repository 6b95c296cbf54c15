// Package notify shows desktop notifications for dictation cycles.
package notify

import "github.com/gen2brain/beeep"

const appName = "whisper-dictation"

// Notifier wraps beeep behind an on/off switch so headless setups can run
// with notifications disabled.
type Notifier struct {
	enabled bool
}

// New builds a notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// Recording announces that the microphone is live.
func (n *Notifier) Recording() {
	n.send("Recording", "Listening... release the key to transcribe.")
}

// Done shows the typed text, truncated to keep the bubble readable.
func (n *Notifier) Done(text string) {
	n.send("Typed", truncate(text, 100))
}

// Empty announces a discarded cycle.
func (n *Notifier) Empty() {
	n.send("Nothing heard", "No speech detected, nothing was typed.")
}

// Error surfaces a failed cycle.
func (n *Notifier) Error(message string) {
	n.send("Dictation error", truncate(message, 160))
}

func (n *Notifier) send(title, body string) {
	if !n.enabled {
		return
	}
	// Notification failures never interrupt a cycle.
	_ = beeep.Notify(appName+": "+title, body, "")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
