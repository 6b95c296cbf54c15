// Package input types text into the focused window.
package input

import "github.com/Hegghammer/whisper-dictation/internal/ports"

// New returns the platform injector.
func New() (ports.Injector, error) {
	return newInjector()
}
