//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 reports Alt as Mod1 and Super as Mod4.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
}
