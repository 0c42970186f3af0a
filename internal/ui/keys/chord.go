// Package keys implements KeyChord parsing/serialization and the flat
// chord→action lookup table the UIStateMachine's event loop consults on
// every terminal key event. Grounded on the teacher's flat route-table
// dispatch shape (internal/api/routes.go's method+path→handler map),
// generalized from HTTP routing to key-chord routing: both are "parse an
// input into a canonical key, look it up in a flat map, fall back to a
// default".
package keys

import (
	"fmt"
	"strings"
)

// KeyChord is a (modifier-set, key-code) pair derived from a terminal
// keypress. Key holds the normalized key name: a single printable
// character (case-sensitive) or one of the named keys (case-insensitive
// on input, stored in canonical form).
type KeyChord struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Key   string
}

var namedKeys = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"esc":       "Esc",
	"escape":    "Esc",
	"backspace": "Backspace",
	"space":     "Space",
	"spc":       "Space",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
	"home":      "Home",
	"end":       "End",
	"delete":    "Delete",
	"del":       "Delete",
}

func init() {
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("f%d", i)
		namedKeys[name] = fmt.Sprintf("F%d", i)
	}
}

// Parse decodes a key-notation string ("C-x", "M-S-Enter", "g", "-") into
// a KeyChord. Prefixes C-/S-/A-/M- are combinable and may appear in any
// order; a bare trailing "-" (as in "C--") denotes the hyphen character
// itself rather than another prefix.
func Parse(s string) (KeyChord, error) {
	if s == "" {
		return KeyChord{}, fmt.Errorf("empty key notation")
	}

	var chord KeyChord
	rest := s
prefixLoop:
	for {
		switch {
		case strings.HasPrefix(rest, "C-") && len(rest) > 2:
			chord.Ctrl = true
			rest = rest[2:]
		case strings.HasPrefix(rest, "S-") && len(rest) > 2:
			chord.Shift = true
			rest = rest[2:]
		case (strings.HasPrefix(rest, "A-") || strings.HasPrefix(rest, "M-")) && len(rest) > 2:
			chord.Alt = true
			rest = rest[2:]
		default:
			break prefixLoop
		}
	}

	if rest == "" {
		return KeyChord{}, fmt.Errorf("invalid key notation %q: no key after modifiers", s)
	}

	if rest == "-" {
		chord.Key = "-"
		return chord, nil
	}

	if canonical, ok := namedKeys[strings.ToLower(rest)]; ok {
		chord.Key = canonical
		return chord, nil
	}

	if len([]rune(rest)) == 1 {
		chord.Key = rest
		return chord, nil
	}

	return KeyChord{}, fmt.Errorf("invalid key notation %q: unrecognized key %q", s, rest)
}

// Serialize renders chord back to its canonical key-notation string, in a
// fixed modifier order (C-, M-, S-) regardless of how the original was
// written - Parse(Serialize(k)) always reproduces k, though Serialize's
// output need not match whatever string originally produced k.
func Serialize(chord KeyChord) string {
	var b strings.Builder
	if chord.Ctrl {
		b.WriteString("C-")
	}
	if chord.Alt {
		b.WriteString("M-")
	}
	if chord.Shift {
		b.WriteString("S-")
	}
	b.WriteString(chord.Key)
	return b.String()
}
