//go:build windows

package input

import (
	"syscall"
	"unicode/utf16"
	"unsafe"

	"github.com/Hegghammer/whisper-dictation/internal/ports"
)

var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyEventFKeyUp   = 0x0002
	keyEventFUnicode = 0x0004
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type winInput struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

// windowsInjector sends each UTF-16 unit as a unicode SendInput pair, so
// any character types regardless of keyboard layout.
type windowsInjector struct{}

func newInjector() (ports.Injector, error) {
	return &windowsInjector{}, nil
}

func (w *windowsInjector) Inject(text string) error {
	units := utf16.Encode([]rune(text))
	inputs := make([]winInput, 0, len(units)*2)

	for _, unit := range units {
		inputs = append(inputs, winInput{
			inputType: inputKeyboard,
			ki:        keyboardInput{wScan: unit, dwFlags: keyEventFUnicode},
		})
		inputs = append(inputs, winInput{
			inputType: inputKeyboard,
			ki:        keyboardInput{wScan: unit, dwFlags: keyEventFUnicode | keyEventFKeyUp},
		})
	}
	if len(inputs) == 0 {
		return nil
	}

	procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	return nil
}
