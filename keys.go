package tinysh

// Key is the closed enumeration of abstract key events produced by the
// escape decoder and the control-byte mapping, and consumed by the key
// dispatch table.
type Key uint8

const (
	KeyNone Key = iota

	// Ctrl-letter chords with built-in editing behavior.
	KeyCtrlA // beginning of line
	KeyCtrlB // cursor left
	KeyCtrlC // cancel line
	KeyCtrlD // delete char at cursor
	KeyCtrlE // end of line
	KeyCtrlF // cursor right
	KeyCtrlK // kill to end of line
	KeyCtrlL // clear screen
	KeyCtrlN // next history entry
	KeyCtrlP // previous history entry
	KeyCtrlR // reverse search (reserved, bindable)
	KeyCtrlT // transpose chars
	KeyCtrlU // kill to beginning of line
	KeyCtrlW // kill word backwards

	KeyTab
	KeyEnter
	KeyBackspace

	// Cursor and navigation keys.
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyDelete
	KeyInsert
	KeyPageUp
	KeyPageDown

	// Function keys.
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyCtrlA:     "Ctrl-A",
	KeyCtrlB:     "Ctrl-B",
	KeyCtrlC:     "Ctrl-C",
	KeyCtrlD:     "Ctrl-D",
	KeyCtrlE:     "Ctrl-E",
	KeyCtrlF:     "Ctrl-F",
	KeyCtrlK:     "Ctrl-K",
	KeyCtrlL:     "Ctrl-L",
	KeyCtrlN:     "Ctrl-N",
	KeyCtrlP:     "Ctrl-P",
	KeyCtrlR:     "Ctrl-R",
	KeyCtrlT:     "Ctrl-T",
	KeyCtrlU:     "Ctrl-U",
	KeyCtrlW:     "Ctrl-W",
	KeyTab:       "Tab",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyRight:     "Right",
	KeyLeft:      "Left",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// String returns a human-readable key name.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

// controlKey maps a raw control byte (1..26) to its key event. Bytes with
// no chord behavior (including CR, LF and Ctrl-H, which the editor handles
// as line terminators and backspace) map to KeyNone so the caller falls
// through to literal processing.
func controlKey(b byte) Key {
	switch b {
	case 1:
		return KeyCtrlA
	case 2:
		return KeyCtrlB
	case 3:
		return KeyCtrlC
	case 4:
		return KeyCtrlD
	case 5:
		return KeyCtrlE
	case 6:
		return KeyCtrlF
	case 9:
		return KeyTab
	case 11:
		return KeyCtrlK
	case 12:
		return KeyCtrlL
	case 14:
		return KeyCtrlN
	case 16:
		return KeyCtrlP
	case 18:
		return KeyCtrlR
	case 20:
		return KeyCtrlT
	case 21:
		return KeyCtrlU
	case 23:
		return KeyCtrlW
	}
	return KeyNone
}
