package browser

import "strings"

// keyAliases maps the key names emitted by the computer-use model to
// the names the driver's keyboard accepts.
var keyAliases = map[string]string{
	"ALT":        "Alt",
	"ARROWDOWN":  "ArrowDown",
	"ARROWLEFT":  "ArrowLeft",
	"ARROWRIGHT": "ArrowRight",
	"ARROWUP":    "ArrowUp",
	"BACKSPACE":  "Backspace",
	"CAPSLOCK":   "CapsLock",
	"CMD":        "Meta",
	"CTRL":       "Control",
	"CONTROL":    "Control",
	"DELETE":     "Delete",
	"DOWN":       "ArrowDown",
	"END":        "End",
	"ENTER":      "Enter",
	"ESC":        "Escape",
	"ESCAPE":     "Escape",
	"HOME":       "Home",
	"INSERT":     "Insert",
	"LEFT":       "ArrowLeft",
	"META":       "Meta",
	"PAGEDOWN":   "PageDown",
	"PAGEUP":     "PageUp",
	"RETURN":     "Enter",
	"RIGHT":      "ArrowRight",
	"SHIFT":      "Shift",
	"SPACE":      " ",
	"TAB":        "Tab",
	"UP":         "ArrowUp",
	"WIN":        "Meta",
}

// normalizeKey converts one model key name to a driver key name.
// Single characters pass through untouched.
func normalizeKey(key string) string {
	if alias, ok := keyAliases[strings.ToUpper(key)]; ok {
		return alias
	}
	if len(key) == 1 {
		return key
	}
	// Function keys and anything else arrive in mixed case; the driver
	// wants the canonical capitalized form.
	return strings.ToUpper(key[:1]) + strings.ToLower(key[1:])
}

// chord joins normalized keys into a single driver chord, pressing
// modifiers and key together ("Control+A").
func chord(keys []string) string {
	normalized := make([]string, len(keys))
	for i, key := range keys {
		normalized[i] = normalizeKey(key)
	}
	return strings.Join(normalized, "+")
}
