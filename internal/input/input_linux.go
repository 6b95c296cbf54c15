//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/Hegghammer/whisper-dictation/internal/ports"
)

// On X11 the text goes through xdotool; on Wayland through wtype. Both
// tools type into whatever window holds focus.
type linuxInjector struct {
	wayland bool
}

func newInjector() (ports.Injector, error) {
	return &linuxInjector{wayland: os.Getenv("WAYLAND_DISPLAY") != ""}, nil
}

func (l *linuxInjector) Inject(text string) error {
	var cmd *exec.Cmd
	if l.wayland {
		cmd = exec.Command("wtype", text)
	} else {
		cmd = exec.Command("xdotool", "type", "--clearmodifiers", "--", text)
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (%s)", cmd.Path, err, output)
	}
	return nil
}
