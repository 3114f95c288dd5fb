package tinysh

// Escape-sequence decoding. The decoder accepts the fixed grammar
//
//	ESC                        (sequence starter)
//	ESC [ P1 ; P2 ... final    (CSI: up to 4 decimal params, one final byte)
//	ESC O final                (SS3: legacy F1-F4, Home, End)
//
// one byte at a time. Any byte that does not fit the grammar at the current
// state resets the decoder; unknown-but-well-formed sequences are swallowed
// silently (completed with KeyNone) rather than replayed as data.

type escResult uint8

const (
	// escNone: the byte is not part of an escape sequence and must be
	// reprocessed by the caller as literal data.
	escNone escResult = iota
	// escMore: the byte was consumed, the sequence is still incomplete.
	escMore
	// escDone: the sequence completed; the returned key may be KeyNone.
	escDone
)

const (
	escGround uint8 = iota
	escEsc          // got ESC
	escCSI          // got ESC [
	escSS3          // got ESC O
)

const maxEscParams = 4

// escDecoder holds the transient state of one escape sequence. It is reset
// after any terminal byte or decode failure and never persists across
// unrelated key presses.
type escDecoder struct {
	state   uint8
	nparams uint8
	params  [maxEscParams]uint16
}

func (d *escDecoder) reset() {
	d.state = escGround
	d.nparams = 0
	for i := range d.params {
		d.params[i] = 0
	}
}

// feed consumes one byte and advances the state machine.
func (d *escDecoder) feed(b byte) (escResult, Key) {
	switch d.state {
	case escGround:
		if b == 0x1b {
			d.state = escEsc
			return escMore, KeyNone
		}
		return escNone, KeyNone

	case escEsc:
		switch b {
		case '[':
			d.state = escCSI
			d.nparams = 0
			return escMore, KeyNone
		case 'O':
			d.state = escSS3
			return escMore, KeyNone
		default:
			d.reset()
			return escNone, KeyNone
		}

	case escCSI:
		switch {
		case b >= '0' && b <= '9':
			if d.nparams == 0 {
				d.nparams = 1
				d.params[0] = 0
			}
			// value*10+digit with no overflow guard; the known final
			// codes are all small.
			d.params[d.nparams-1] = d.params[d.nparams-1]*10 + uint16(b-'0')
			return escMore, KeyNone
		case b == ';':
			if d.nparams < maxEscParams {
				d.params[d.nparams] = 0
				d.nparams++
			}
			return escMore, KeyNone
		default:
			key := d.csiFinal(b)
			d.reset()
			return escDone, key
		}
	}

	// escSS3
	var key Key
	switch b {
	case 'P':
		key = KeyF1
	case 'Q':
		key = KeyF2
	case 'R':
		key = KeyF3
	case 'S':
		key = KeyF4
	case 'H':
		key = KeyHome
	case 'F':
		key = KeyEnd
	}
	d.reset()
	return escDone, key
}

// csiFinal maps a CSI final byte (plus accumulated params for '~') to a key.
func (d *escDecoder) csiFinal(final byte) Key {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	case 'Z': // Shift+Tab, treated as Tab
		return KeyTab
	case '~':
		if d.nparams == 0 {
			return KeyNone
		}
		switch d.params[0] {
		case 1:
			return KeyHome
		case 2:
			return KeyInsert
		case 3:
			return KeyDelete
		case 4:
			return KeyEnd
		case 5:
			return KeyPageUp
		case 6:
			return KeyPageDown
		case 15:
			return KeyF5
		case 17:
			return KeyF6
		case 18:
			return KeyF7
		case 19:
			return KeyF8
		case 20:
			return KeyF9
		case 21:
			return KeyF10
		case 23:
			return KeyF11
		case 24:
			return KeyF12
		}
	}
	return KeyNone
}
