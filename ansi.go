package tinysh

// The fixed terminal control vocabulary this engine emits. No capability
// negotiation: a plain VT100/ANSI terminal is assumed.
const (
	ansiClearToEOL  = "\x1b[K"  // clear from cursor to end of line
	ansiClearScreen = "\x1b[2J" // clear whole screen
	ansiCursorHome  = "\x1b[H"  // move cursor to top-left

	bel = 0x07 // terminal alert
)
