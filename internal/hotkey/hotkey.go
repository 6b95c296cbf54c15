// Package hotkey registers the global push-to-talk key.
package hotkey

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// Binding is a parsed hotkey combination.
type Binding struct {
	spec string
	mods []hotkey.Modifier
	key  hotkey.Key
}

// String returns the spec the binding was parsed from.
func (b Binding) String() string {
	return b.spec
}

// Parse reads a combination such as "ctrl+shift+space". The last element
// is the key; everything before it must be a modifier (ctrl, shift, alt,
// super). Matching is case-insensitive.
func Parse(spec string) (Binding, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Binding{}, fmt.Errorf("empty hotkey spec %q", spec)
	}

	binding := Binding{spec: spec}
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierMap[strings.TrimSpace(part)]
		if !ok {
			return Binding{}, fmt.Errorf("unknown modifier %q in hotkey %q", part, spec)
		}
		binding.mods = append(binding.mods, mod)
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyMap[name]
	if !ok {
		return Binding{}, fmt.Errorf("unknown key %q in hotkey %q", name, spec)
	}
	binding.key = key

	return binding, nil
}

// Monitor holds a registered hotkey and dispatches press/release to the
// controller. Keydown events are debounced because the OS auto-repeats
// them while the key is held.
type Monitor struct {
	mu        sync.Mutex
	hk        *hotkey.Hotkey
	onPress   func()
	onRelease func()
	stopCh    chan struct{}
}

// NewMonitor builds a monitor with the given callbacks.
func NewMonitor(onPress, onRelease func()) *Monitor {
	return &Monitor{onPress: onPress, onRelease: onRelease}
}

// Register claims the binding with the OS and starts listening.
func (m *Monitor) Register(binding Binding) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hk != nil {
		return fmt.Errorf("hotkey already registered")
	}

	hk := hotkey.New(binding.mods, binding.key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %q: %w", binding.spec, err)
	}

	m.hk = hk
	m.stopCh = make(chan struct{})
	go m.listen(hk, m.stopCh)

	return nil
}

func (m *Monitor) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var lastKeydown time.Time
	const debounce = 300 * time.Millisecond

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounce {
				continue
			}
			lastKeydown = now
			if m.onPress != nil {
				m.onPress()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
			if m.onRelease != nil {
				m.onRelease()
			}
		}
	}
}

// Unregister releases the binding and stops the listener.
func (m *Monitor) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
	if m.hk != nil {
		err := m.hk.Unregister()
		m.hk = nil
		return err
	}
	return nil
}

// RunOnMainThread hands the process main thread to fn. macOS requires the
// event loop to live there.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap lives in the platform files.

var keyMap = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
	"a":      hotkey.KeyA,
	"b":      hotkey.KeyB,
	"c":      hotkey.KeyC,
	"d":      hotkey.KeyD,
	"e":      hotkey.KeyE,
	"f":      hotkey.KeyF,
	"g":      hotkey.KeyG,
	"h":      hotkey.KeyH,
	"i":      hotkey.KeyI,
	"j":      hotkey.KeyJ,
	"k":      hotkey.KeyK,
	"l":      hotkey.KeyL,
	"m":      hotkey.KeyM,
	"n":      hotkey.KeyN,
	"o":      hotkey.KeyO,
	"p":      hotkey.KeyP,
	"q":      hotkey.KeyQ,
	"r":      hotkey.KeyR,
	"s":      hotkey.KeyS,
	"t":      hotkey.KeyT,
	"u":      hotkey.KeyU,
	"v":      hotkey.KeyV,
	"w":      hotkey.KeyW,
	"x":      hotkey.KeyX,
	"y":      hotkey.KeyY,
	"z":      hotkey.KeyZ,
	"f1":     hotkey.KeyF1,
	"f2":     hotkey.KeyF2,
	"f3":     hotkey.KeyF3,
	"f4":     hotkey.KeyF4,
	"f5":     hotkey.KeyF5,
	"f6":     hotkey.KeyF6,
	"f7":     hotkey.KeyF7,
	"f8":     hotkey.KeyF8,
	"f9":     hotkey.KeyF9,
	"f10":    hotkey.KeyF10,
	"f11":    hotkey.KeyF11,
	"f12":    hotkey.KeyF12,
}
