package event

import (
	"fmt"
	"strings"
)

// Key is a key code. Codes at or above KeyUser are free for application use.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyBackTab
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape

	// KeyUser is the first application-defined key code.
	KeyUser Key = 1000
)

var keyNames = map[Key]string{
	KeyNone:       "none",
	KeyTab:        "tab",
	KeyBackTab:    "backtab",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	KeyArrowUp:    "up",
	KeyArrowDown:  "down",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyBackspace:  "backspace",
	KeySpace:      "space",
	KeyEnter:      "enter",
	KeyEscape:     "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key%d", int(k))
}

// ParseKey resolves a key name as printed by Key.String.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	var code int
	if _, err := fmt.Sscanf(name, "key%d", &code); err == nil {
		return Key(code), nil
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

// IsActivation reports whether k activates buttons and toggles.
func (k Key) IsActivation() bool {
	return k == KeyEnter || k == KeySpace
}
